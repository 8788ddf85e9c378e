package utils

import (
	goerrors "errors"
	"strings"
	"time"

	"agenda-api/core/config"
	"agenda-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenClaims is the JWT payload used across the API.
type TokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
	Scope   string    `json:"scope"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(config.Get("JWT_SECRET"))
}

// GenerateToken issues a signed JWT for the given identity and scope.
func GenerateToken(userID uuid.UUID, email string, isAdmin bool, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		Scope:   scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateAndParseToken verifies the signature and expiry and returns the
// claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, *errors.AppError) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, goerrors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token has expired", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}
	if !token.Valid {
		return nil, errors.New(errors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

// GetTokenFromHeader extracts the bearer token from the Authorization header.
func GetTokenFromHeader(c echo.Context) (string, *errors.AppError) {
	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	if authorization == "" {
		return "", errors.New(errors.ErrMissingAuthorizationHeader, "missing authorization header")
	}
	if !strings.HasPrefix(authorization, "Bearer ") {
		return "", errors.New(errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
	}
	return strings.TrimPrefix(authorization, "Bearer "), nil
}
