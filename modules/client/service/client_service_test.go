package service

import (
	"context"
	"strings"
	"testing"

	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/modules/client/dto"
	"agenda-api/modules/client/entity"

	"github.com/google/uuid"
)

type fakeClientRepo struct {
	items map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{items: map[uuid.UUID]*entity.Client{}}
}

func (f *fakeClientRepo) Create(ctx context.Context, c *entity.Client) (*entity.Client, error) {
	stored := *c
	stored.IsActive = true
	f.items[c.ID] = &stored
	return &stored, nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	c, ok := f.items[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClientRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error) {
	for _, c := range f.items {
		if c.IsActive && c.TaxID == taxID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) TaxIDExists(ctx context.Context, taxID string) (bool, error) {
	c, _ := f.GetByTaxID(ctx, taxID)
	return c != nil, nil
}

func (f *fakeClientRepo) List(ctx context.Context, p params.QueryParams) (*entity.PaginatedClients, error) {
	var matched []entity.Client
	for _, c := range f.items {
		if !c.IsActive {
			continue
		}
		if p.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(p.Search)) {
			continue
		}
		matched = append(matched, *c)
	}
	return &entity.PaginatedClients{
		Items:      matched,
		TotalItems: len(matched),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *entity.Client) (*entity.Client, error) {
	existing, ok := f.items[c.ID]
	if !ok || !existing.IsActive {
		return nil, nil
	}
	updated := *c
	updated.IsActive = true
	f.items[c.ID] = &updated
	copied := updated
	return &copied, nil
}

func (f *fakeClientRepo) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	if c, ok := f.items[id]; ok {
		c.PhotoURL = url
	}
	return nil
}

func (f *fakeClientRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if c, ok := f.items[id]; ok {
		c.IsActive = false
	}
	return nil
}

func TestCreateClient(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	resp, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{
		Name:  "Acme Supplies S.A.",
		TaxID: "20123456789",
		Email: "billing@acme.example",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Slug != "acme-supplies-s-a" {
		t.Errorf("unexpected slug: %s", resp.Slug)
	}
	if resp.TaxID != "20123456789" {
		t.Errorf("unexpected tax id: %s", resp.TaxID)
	}
}

func TestCreateClientValidation(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	if _, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{TaxID: "123"}); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("expected INVALID_INPUT for missing name, got %v", appErr)
	}
	if _, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{Name: "Acme"}); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("expected INVALID_INPUT for missing tax id, got %v", appErr)
	}
}

func TestCreateClientDuplicateTaxID(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	req := &dto.CreateClientRequest{Name: "Acme", TaxID: "20123456789"}
	if _, appErr := svc.Create(context.Background(), req); appErr != nil {
		t.Fatalf("first create failed: %v", appErr)
	}

	_, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{Name: "Other", TaxID: "20123456789"})
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ALREADY_EXISTS, got %v", appErr)
	}
}

func TestDeletedClientFreesTaxID(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo, nil)

	created, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{Name: "Acme", TaxID: "20123456789"})
	if appErr != nil {
		t.Fatalf("create failed: %v", appErr)
	}
	id, _ := uuid.Parse(created.ID)

	if appErr := svc.Delete(context.Background(), id); appErr != nil {
		t.Fatalf("delete failed: %v", appErr)
	}

	if _, appErr := svc.GetByID(context.Background(), id); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected NOT_FOUND for deleted client, got %v", appErr)
	}

	// The tax id can be registered again once the old record is inactive.
	if _, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{Name: "Acme Again", TaxID: "20123456789"}); appErr != nil {
		t.Fatalf("re-registering tax id failed: %v", appErr)
	}
}

func TestUpdateClientPartial(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	created, appErr := svc.Create(context.Background(), &dto.CreateClientRequest{
		Name:  "Acme",
		TaxID: "20123456789",
		Phone: "555-0100",
	})
	if appErr != nil {
		t.Fatalf("create failed: %v", appErr)
	}
	id, _ := uuid.Parse(created.ID)

	newName := "Acme Holdings"
	updated, appErr := svc.Update(context.Background(), id, &dto.UpdateClientRequest{Name: &newName})
	if appErr != nil {
		t.Fatalf("update failed: %v", appErr)
	}
	if updated.Name != "Acme Holdings" {
		t.Errorf("name not updated: %s", updated.Name)
	}
	if updated.Slug != "acme-holdings" {
		t.Errorf("slug not regenerated: %s", updated.Slug)
	}
	if updated.Phone != "555-0100" {
		t.Errorf("untouched field changed: %s", updated.Phone)
	}

	empty := "  "
	if _, appErr := svc.Update(context.Background(), id, &dto.UpdateClientRequest{Name: &empty}); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("expected INVALID_INPUT for blank name, got %v", appErr)
	}
}

func TestUpdateClientNotFound(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	name := "Ghost"
	_, appErr := svc.Update(context.Background(), uuid.New(), &dto.UpdateClientRequest{Name: &name})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", appErr)
	}
}

func TestListClientsSearch(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	for _, c := range []dto.CreateClientRequest{
		{Name: "Acme", TaxID: "1"},
		{Name: "Bolt Industries", TaxID: "2"},
		{Name: "Acme Freight", TaxID: "3"},
	} {
		if _, appErr := svc.Create(context.Background(), &c); appErr != nil {
			t.Fatalf("create failed: %v", appErr)
		}
	}

	page, appErr := svc.List(context.Background(), params.QueryParams{PageNumber: 1, PageSize: 20, Search: "acme"})
	if appErr != nil {
		t.Fatalf("list failed: %v", appErr)
	}
	if page.TotalItems != 2 {
		t.Errorf("expected 2 matches, got %d", page.TotalItems)
	}
	if page.TotalPages != 1 {
		t.Errorf("expected 1 page, got %d", page.TotalPages)
	}
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil)

	_, appErr := svc.UploadPhoto(context.Background(), uuid.New(), "photo.png", strings.NewReader("img"), "image/png")
	if appErr == nil || appErr.Code != errors.ErrInternalServer {
		t.Fatalf("expected error when storage is unconfigured, got %v", appErr)
	}
}
