package controller

import (
	"agenda-api/core/constants"
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/core/utils"
	"agenda-api/modules/appointment/dto"
	"agenda-api/modules/appointment/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AppointmentController handles appointment HTTP requests.
type AppointmentController struct {
	controller.BaseController
	AppointmentService service.AppointmentServiceInterface
}

func NewAppointmentController(svc service.AppointmentServiceInterface) *AppointmentController {
	return &AppointmentController{
		BaseController:     controller.NewBaseController(),
		AppointmentService: svc,
	}
}

func (c *AppointmentController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.New(errors.ErrUnauthorized, "user not authenticated")
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.New(errors.ErrUnauthorized, "invalid token data")
	}
	return claims, nil
}

// Availability handles GET /appointments/availability
// @Summary List occupied slots for a day
// @Description Returns the "HH:MM" start times already booked for the given date.
// @Tags Appointments
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.OccupancyResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /appointments/availability [get]
func (c *AppointmentController) Availability(ctx echo.Context) error {
	result, appErr := c.AppointmentService.Occupied(ctx.Request().Context(), ctx.QueryParam("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Create handles POST /private/appointments
// @Summary Book a slot
// @Description Reserves a slot atomically; a taken slot returns code SLOT_TAKEN.
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Booking request"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/appointments [post]
func (c *AppointmentController) Create(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateAppointmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.AppointmentService.Create(ctx.Request().Context(), claims.UserID, claims.IsAdmin, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Appointment created successfully")
}

// ListMine handles GET /private/appointments/mine
// @Summary List the caller's appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AppointmentResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /private/appointments/mine [get]
func (c *AppointmentController) ListMine(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AppointmentService.ListMine(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListAll handles GET /private/appointments
// @Summary List all appointments with owner identity (admin)
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AppointmentWithOwnerResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/appointments [get]
func (c *AppointmentController) ListAll(ctx echo.Context) error {
	result, appErr := c.AppointmentService.ListAll(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Cancel handles DELETE /private/appointments/:id
// @Summary Cancel an appointment
// @Description Owners cancel their own appointments; admins can cancel any.
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/appointments/{id} [delete]
func (c *AppointmentController) Cancel(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	if appErr := c.AppointmentService.Cancel(ctx.Request().Context(), id, claims.UserID, claims.IsAdmin); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Appointment cancelled")
}
