package repository

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"
	"strings"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/core/params"
	"agenda-api/modules/client/entity"

	"github.com/google/uuid"
)

type ClientRepository struct {
	DB database.IDatabase
}

func NewClientRepository(db database.IDatabase) *ClientRepository {
	return &ClientRepository{DB: db}
}

type ClientRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Client) (*entity.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error)
	TaxIDExists(ctx context.Context, taxID string) (bool, error)
	List(ctx context.Context, p params.QueryParams) (*entity.PaginatedClients, error)
	Update(ctx context.Context, c *entity.Client) (*entity.Client, error)
	SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

const clientColumns = `id, name, tax_id, email, phone, address, channel, slug, photo_url, is_active, created_at, updated_at`

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) (*entity.Client, error) {
	query := `
		INSERT INTO clients (id, name, tax_id, email, phone, address, channel, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + clientColumns

	var created entity.Client
	err := r.DB.GetContext(ctx, &created, query,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Channel, c.Slug)
	if err != nil {
		logger.Error("ClientRepository:Create", err)
		return nil, err
	}
	return &created, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND is_active = TRUE`

	var c entity.Client
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ClientRepository:GetByID", err)
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tax_id = $1 AND is_active = TRUE`

	var c entity.Client
	err := r.DB.GetContext(ctx, &c, query, taxID)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ClientRepository:GetByTaxID", err)
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) TaxIDExists(ctx context.Context, taxID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE tax_id = $1 AND is_active = TRUE)`

	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, taxID); err != nil {
		logger.Error("ClientRepository:TaxIDExists", err)
		return false, err
	}
	return exists, nil
}

// List returns active clients sorted by name, optionally filtered by a
// search term over name, tax id and email.
func (r *ClientRepository) List(ctx context.Context, p params.QueryParams) (*entity.PaginatedClients, error) {
	baseQuery := `FROM clients`

	conditions := []string{"is_active = TRUE"}
	var args []interface{}
	argIndex := 1

	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR tax_id ILIKE $%d OR email ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+p.Search+"%")
		argIndex++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) " + baseQuery + whereClause

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, countQuery, args...); err != nil {
		logger.Error("ClientRepository:List - Count", err)
		return nil, err
	}

	dataQuery := "SELECT " + clientColumns + " " + baseQuery + whereClause + `
		ORDER BY name ASC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)

	args = append(args, p.PageSize, p.Offset())

	var clients []entity.Client
	if err := r.DB.SelectContext(ctx, &clients, dataQuery, args...); err != nil {
		logger.Error("ClientRepository:List - Select", err)
		return nil, err
	}

	return &entity.PaginatedClients{
		Items:      clients,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) (*entity.Client, error) {
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, channel = $5,
		    slug = $6, updated_at = now()
		WHERE id = $7 AND is_active = TRUE
		RETURNING ` + clientColumns

	var updated entity.Client
	err := r.DB.GetContext(ctx, &updated, query,
		c.Name, c.Email, c.Phone, c.Address, c.Channel, c.Slug, c.ID)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ClientRepository:Update", err)
		return nil, err
	}
	return &updated, nil
}

func (r *ClientRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE clients SET photo_url = $1, updated_at = now() WHERE id = $2`
	if err := r.DB.ExecContext(ctx, query, url, id); err != nil {
		logger.Error("ClientRepository:SetPhotoURL", err)
		return err
	}
	return nil
}

// SoftDelete deactivates a client. The record stays in place so historical
// appointments keep resolving; a new client may later reuse the tax id.
func (r *ClientRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE clients SET is_active = FALSE, updated_at = now() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("ClientRepository:SoftDelete", err)
		return err
	}
	return nil
}
