package dto

import (
	"time"

	"agenda-api/modules/auth/entity"
)

// ===================== Request DTOs =====================

type SignupRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	DocumentID *string `json:"document_id"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Password   *string `json:"password"`
}

// ===================== Response DTOs =====================

type UserResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DocumentID string    `json:"document_id,omitempty"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	IsAdmin    bool      `json:"is_admin"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

func ToUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID.String(),
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DocumentID: u.DocumentID,
		Email:      u.Email,
		Phone:      u.Phone,
		IsAdmin:    u.IsAdmin,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}
