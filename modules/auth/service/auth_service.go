package service

import (
	"context"
	"strings"

	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/entity"
	"agenda-api/modules/auth/repository"

	"github.com/google/uuid"
)

// AuthService handles account and token business logic.
type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, *errors.AppError)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, *errors.AppError)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, *errors.AppError)
	Signout(ctx context.Context, token string) *errors.AppError
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError)
	ListUsers(ctx context.Context) ([]dto.UserResponse, *errors.AppError)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError)
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache) AuthServiceInterface {
	return &AuthService{repo: repo, cache: c}
}

func (s *AuthService) issueTokens(user *entity.User) (string, string, error) {
	access, err := utils.GenerateToken(user.ID, user.Email, user.IsAdmin, constants.ScopeTokenAccess, constants.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := utils.GenerateToken(user.ID, user.Email, user.IsAdmin, constants.ScopeTokenRefresh, constants.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.FirstName == "" || email == "" || len(req.Password) < 6 {
		return nil, errors.New(errors.ErrInvalidInput, "first_name, email and a password of at least 6 characters are required")
	}

	exists, err := s.repo.EmailExists(ctx, email, uuid.Nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check email", err)
	}
	if exists {
		return nil, errors.New(errors.ErrAlreadyExists, "email is already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Signup:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		ID:         uuid.New(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		DocumentID: req.DocumentID,
		Email:      email,
		Password:   hashed,
		Phone:      req.Phone,
		IsAdmin:    false,
		IsActive:   true,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	access, refresh, err := s.issueTokens(created)
	if err != nil {
		logger.Error("AuthService:Signup:issueTokens", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue tokens", err)
	}

	return &dto.AuthResponse{
		User:         dto.ToUserResponse(created),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errors.New(errors.ErrInvalidInput, "email and password are required")
	}

	if s.cache != nil {
		blocked, err := s.cache.IsLoginBlocked(ctx, email)
		if err != nil {
			logger.Error("AuthService:Signin:IsLoginBlocked", err)
		} else if blocked {
			return nil, errors.New(errors.ErrUnauthorized, "too many failed attempts, try again later")
		}
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !utils.ComparePassword(user.Password, req.Password) {
		if s.cache != nil {
			if _, err := s.cache.IncrementLoginAttempt(ctx, email); err != nil {
				logger.Error("AuthService:Signin:IncrementLoginAttempt", err)
			}
		}
		return nil, errors.New(errors.ErrUnauthorized, "invalid email or password")
	}

	if s.cache != nil {
		if err := s.cache.ResetLoginAttempts(ctx, email); err != nil {
			logger.Error("AuthService:Signin:ResetLoginAttempts", err)
		}
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		logger.Error("AuthService:Signin:issueTokens", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue tokens", err)
	}

	return &dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, *errors.AppError) {
	claims, appErr := utils.ValidateAndParseToken(req.RefreshToken)
	if appErr != nil {
		return nil, appErr
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.New(errors.ErrUnauthorized, "token is not a refresh token")
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.New(errors.ErrUnauthorized, "account is not active")
	}

	access, err := utils.GenerateToken(user.ID, user.Email, user.IsAdmin, constants.ScopeTokenAccess, constants.AccessTokenTTL)
	if err != nil {
		logger.Error("AuthService:Refresh:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

func (s *AuthService) Signout(ctx context.Context, token string) *errors.AppError {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.AddToTokenBlacklist(ctx, token); err != nil {
		logger.Error("AuthService:Signout:AddToTokenBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "user not found")
	}
	return dto.ToUserResponse(user), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "user not found")
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DocumentID != nil {
		user.DocumentID = *req.DocumentID
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Email != nil && *req.Email != user.Email {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		exists, err := s.repo.EmailExists(ctx, email, user.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check email", err)
		}
		if exists {
			return nil, errors.New(errors.ErrAlreadyExists, "email is already in use")
		}
		user.Email = email
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			return nil, errors.New(errors.ErrInvalidInput, "password must be at least 6 characters")
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			logger.Error("AuthService:UpdateProfile:HashPassword", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
		}
		user.Password = hashed
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update profile", err)
	}
	return dto.ToUserResponse(user), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]dto.UserResponse, *errors.AppError) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list users", err)
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *dto.ToUserResponse(&users[i]))
	}
	return result, nil
}

// GetUserByID resolves an identity; the appointment service uses it to
// confirm on-behalf-of targets exist.
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "user not found")
	}
	return user, nil
}
