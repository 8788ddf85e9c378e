package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(ctrl *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{ScheduleController: ctrl}
}

// Setup registers schedule routes. Reads are public so clients can render
// the slot picker before signing in; writes are admin only.
func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/schedule", r.ScheduleController.GetSchedule)
	v1.GET("/schedule/slots", r.ScheduleController.GetSlots)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.PUT("/schedule", r.ScheduleController.UpsertSchedule, mw.AdminMiddleware())
}
