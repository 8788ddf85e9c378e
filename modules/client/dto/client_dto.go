package dto

import (
	"time"

	"agenda-api/modules/client/entity"
)

// ===================== Request DTOs =====================

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"tax_id" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Channel string `json:"channel"`
}

// UpdateClientRequest carries partial updates; nil fields are left as is.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Channel *string `json:"channel"`
}

// ===================== Response DTOs =====================

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Channel   string    `json:"channel,omitempty"`
	Slug      string    `json:"slug"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedClientResponse struct {
	Items      []ClientResponse `json:"items"`
	TotalItems int              `json:"total_items"`
	PageNumber int              `json:"page_number"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func ToClientResponse(c *entity.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Channel:   c.Channel,
		Slug:      c.Slug,
		PhotoURL:  c.PhotoURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
