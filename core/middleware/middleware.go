package middleware

import (
	"agenda-api/core/cache"
	"agenda-api/core/constants"
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/logger"
	"agenda-api/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the auth guards used by module routers.
type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

func reject(c echo.Context, appErr *errors.AppError) error {
	return c.JSON(controller.HTTPStatusFor(appErr.Code), &controller.ErrorResponse{
		Status:  "error",
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// AuthMiddleware validates the bearer token, rejects blacklisted tokens and
// stores the claims in the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, appErr := utils.GetTokenFromHeader(c)
			if appErr != nil {
				return reject(c, appErr)
			}

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
					return reject(c, errors.New(errors.ErrInternalServer, "failed to verify token"))
				}
				if blacklisted {
					return reject(c, errors.New(errors.ErrUnauthorized, "token has been revoked"))
				}
			}

			claims, appErr := utils.ValidateAndParseToken(token)
			if appErr != nil {
				return reject(c, appErr)
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return reject(c, errors.New(errors.ErrUnauthorized, "token scope is not valid for this endpoint"))
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// AdminMiddleware requires an authenticated admin. Must run after
// AuthMiddleware.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok || claims == nil {
				return reject(c, errors.New(errors.ErrUnauthorized, "user not authenticated"))
			}
			if !claims.IsAdmin {
				return reject(c, errors.New(errors.ErrForbidden, "admin privileges required"))
			}
			return next(c)
		}
	}
}
