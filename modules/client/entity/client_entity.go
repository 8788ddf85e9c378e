package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer record in the agenda's address book. TaxID is the
// business identifier and is unique among active clients.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	TaxID     string    `db:"tax_id" json:"tax_id"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	Channel   string    `db:"channel" json:"channel"`
	Slug      string    `db:"slug" json:"slug"`
	PhotoURL  string    `db:"photo_url" json:"photo_url"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PaginatedClients is the repository-level page of clients.
type PaginatedClients struct {
	Items      []Client `json:"items"`
	TotalItems int      `json:"total_items"`
	PageNumber int      `json:"page_number"`
	PageSize   int      `json:"page_size"`
}
