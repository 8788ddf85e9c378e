package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"agenda-api/core/errors"
	"agenda-api/core/params"
	"agenda-api/core/storage"
	"agenda-api/modules/client/dto"
	"agenda-api/modules/client/entity"
	"agenda-api/modules/client/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ClientService struct {
	repo    repository.ClientRepositoryInterface
	storage storage.Storage
}

type ClientServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, *errors.AppError)
	GetByTaxID(ctx context.Context, taxID string) (*dto.ClientResponse, *errors.AppError)
	List(ctx context.Context, p params.QueryParams) (*dto.PaginatedClientResponse, *errors.AppError)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, *errors.AppError)
	UploadPhoto(ctx context.Context, id uuid.UUID, filename string, body io.Reader, contentType string) (*dto.ClientResponse, *errors.AppError)
	Delete(ctx context.Context, id uuid.UUID) *errors.AppError
}

func NewClientService(repo repository.ClientRepositoryInterface, st storage.Storage) ClientServiceInterface {
	return &ClientService{repo: repo, storage: st}
}

func (s *ClientService) Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, *errors.AppError) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "name is required")
	}
	if strings.TrimSpace(req.TaxID) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "tax_id is required")
	}

	exists, err := s.repo.TaxIDExists(ctx, req.TaxID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check tax id", err)
	}
	if exists {
		return nil, errors.New(errors.ErrAlreadyExists, "a client with this tax id already exists")
	}

	created, err := s.repo.Create(ctx, &entity.Client{
		ID:      uuid.New(),
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Channel: req.Channel,
		Slug:    slug.Make(req.Name),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create client", err)
	}
	return dto.ToClientResponse(created), nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, *errors.AppError) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get client", err)
	}
	if c == nil {
		return nil, errors.New(errors.ErrNotFound, "client not found")
	}
	return dto.ToClientResponse(c), nil
}

func (s *ClientService) GetByTaxID(ctx context.Context, taxID string) (*dto.ClientResponse, *errors.AppError) {
	if strings.TrimSpace(taxID) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "tax id is required")
	}
	c, err := s.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get client", err)
	}
	if c == nil {
		return nil, errors.New(errors.ErrNotFound, "client not found")
	}
	return dto.ToClientResponse(c), nil
}

func (s *ClientService) List(ctx context.Context, p params.QueryParams) (*dto.PaginatedClientResponse, *errors.AppError) {
	page, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list clients", err)
	}

	items := make([]dto.ClientResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *dto.ToClientResponse(&page.Items[i]))
	}
	return &dto.PaginatedClientResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: p.Pages(page.TotalItems),
	}, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateClientRequest) (*dto.ClientResponse, *errors.AppError) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get client", err)
	}
	if existing == nil {
		return nil, errors.New(errors.ErrNotFound, "client not found")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New(errors.ErrInvalidInput, "name cannot be empty")
		}
		existing.Name = *req.Name
		existing.Slug = slug.Make(*req.Name)
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}
	if req.Channel != nil {
		existing.Channel = *req.Channel
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update client", err)
	}
	if updated == nil {
		return nil, errors.New(errors.ErrNotFound, "client not found")
	}
	return dto.ToClientResponse(updated), nil
}

// UploadPhoto stores the client photo in object storage and records its URL.
func (s *ClientService) UploadPhoto(ctx context.Context, id uuid.UUID, filename string, body io.Reader, contentType string) (*dto.ClientResponse, *errors.AppError) {
	if s.storage == nil {
		return nil, errors.New(errors.ErrInternalServer, "file storage is not configured")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get client", err)
	}
	if existing == nil {
		return nil, errors.New(errors.ErrNotFound, "client not found")
	}

	key := fmt.Sprintf("clients/%s/photo%s", id, path.Ext(filename))
	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to upload photo", err)
	}

	if err := s.repo.SetPhotoURL(ctx, id, url); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save photo url", err)
	}
	existing.PhotoURL = url
	return dto.ToClientResponse(existing), nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get client", err)
	}
	if existing == nil {
		return errors.New(errors.ErrNotFound, "client not found")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete client", err)
	}
	return nil
}
