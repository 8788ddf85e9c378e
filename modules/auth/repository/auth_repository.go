package repository

import (
	"context"
	"database/sql"
	goerrors "errors"

	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepository handles user persistence.
type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

type AuthRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	UpdateUser(ctx context.Context, user *entity.User) error
	ListUsers(ctx context.Context) ([]entity.User, error)
}

const userColumns = `id, first_name, last_name, document_id, email, password, phone,
	       is_admin, is_active, created_at, updated_at`

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, first_name, last_name, document_id, email, password, phone, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.ID, user.FirstName, user.LastName, user.DocumentID,
		user.Email, user.Password, user.Phone, user.IsAdmin, user.IsActive)
	if err != nil {
		logger.Error("AuthRepository:CreateUser", err)
		return nil, err
	}
	return &created, nil
}

// GetByEmail returns active users only; deactivated accounts cannot sign in.
func (r *AuthRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = TRUE`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetByEmail", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetByID", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)`

	var exists bool
	err := r.DB.QueryRowContext(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		logger.Error("AuthRepository:EmailExists", err)
		return false, err
	}
	return exists, nil
}

func (r *AuthRepository) UpdateUser(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, document_id = $4, email = $5,
		    password = $6, phone = $7, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.DocumentID,
		user.Email, user.Password, user.Phone)
	if err != nil {
		logger.Error("AuthRepository:UpdateUser", err)
		return err
	}
	return nil
}

func (r *AuthRepository) ListUsers(ctx context.Context) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY first_name, last_name`

	var users []entity.User
	err := r.DB.SelectContext(ctx, &users, query)
	if err != nil {
		logger.Error("AuthRepository:ListUsers", err)
		return nil, err
	}
	return users, nil
}
