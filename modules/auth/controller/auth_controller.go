package controller

import (
	"agenda-api/core/constants"
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/utils"
	"agenda-api/modules/auth/dto"
	"agenda-api/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthController handles account HTTP requests.
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (c *AuthController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.New(errors.ErrUnauthorized, "user not authenticated")
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.New(errors.ErrUnauthorized, "invalid token data")
	}
	return claims.UserID, nil
}

// Signup handles POST /auth/signup
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx echo.Context) error {
	var req dto.SignupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AuthService.Signup(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Account created successfully")
}

// Signin handles POST /auth/signin
// @Summary Sign in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/signin [post]
func (c *AuthController) Signin(ctx echo.Context) error {
	var req dto.SigninRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AuthService.Signin(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Signed in successfully")
}

// Refresh handles POST /auth/refresh
// @Summary Exchange a refresh token for a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx echo.Context) error {
	var req dto.RefreshRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AuthService.Refresh(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Token refreshed")
}

// Signout handles POST /private/auth/signout
// @Summary Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/auth/signout [post]
func (c *AuthController) Signout(ctx echo.Context) error {
	token, appErr := utils.GetTokenFromHeader(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if appErr := c.AuthService.Signout(ctx.Request().Context(), token); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Signed out")
}

// Me handles GET /private/auth/me
// @Summary Get the authenticated account
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/auth/me [get]
func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AuthService.Me(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateProfile handles PUT /private/auth/profile
// @Summary Update the authenticated account
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AuthService.UpdateProfile(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Profile updated")
}

// ListUsers handles GET /private/users
// @Summary List all accounts (admin)
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/users [get]
func (c *AuthController) ListUsers(ctx echo.Context) error {
	result, appErr := c.AuthService.ListUsers(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
