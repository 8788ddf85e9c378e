package controller

import (
	"agenda-api/core/controller"
	"agenda-api/core/errors"
	"agenda-api/modules/schedule/dto"
	"agenda-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// ScheduleController handles schedule configuration HTTP requests.
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

// GetSchedule handles GET /schedule
// @Summary Get the active schedule configuration
// @Tags Schedule
// @Produce json
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /schedule [get]
func (c *ScheduleController) GetSchedule(ctx echo.Context) error {
	result, appErr := c.ScheduleService.GetSchedule(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetSlots handles GET /schedule/slots
// @Summary List every slot generated by the active schedule
// @Tags Schedule
// @Produce json
// @Success 200 {object} dto.SlotsResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /schedule/slots [get]
func (c *ScheduleController) GetSlots(ctx echo.Context) error {
	slots, appErr := c.ScheduleService.ActiveSlots(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, &dto.SlotsResponse{Slots: slots}, "Success")
}

// UpsertSchedule handles PUT /private/schedule
// @Summary Create or replace the schedule configuration
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpsertScheduleRequest true "Schedule configuration"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/schedule [put]
func (c *ScheduleController) UpsertSchedule(ctx echo.Context) error {
	var req dto.UpsertScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.ScheduleService.UpsertSchedule(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Schedule updated successfully")
}
