package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in and own appointments.
type User struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	DocumentID string    `db:"document_id" json:"document_id"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	Phone      string    `db:"phone" json:"phone"`
	IsAdmin    bool      `db:"is_admin" json:"is_admin"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name for display and emails.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
