package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/appointment/controller"

	"github.com/labstack/echo/v4"
)

type AppointmentRouter struct {
	AppointmentController *controller.AppointmentController
}

func NewAppointmentRouter(ctrl *controller.AppointmentController) *AppointmentRouter {
	return &AppointmentRouter{AppointmentController: ctrl}
}

// Setup registers appointment routes. Availability is public so the slot
// picker can render before sign in; booking and cancellation require a
// session, and the full ledger is admin only.
func (r *AppointmentRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/appointments/availability", r.AppointmentController.Availability)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/appointments", r.AppointmentController.Create)
	private.GET("/appointments/mine", r.AppointmentController.ListMine)
	private.DELETE("/appointments/:id", r.AppointmentController.Cancel)
	private.GET("/appointments", r.AppointmentController.ListAll, mw.AdminMiddleware())
}
