package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/client/controller"

	"github.com/labstack/echo/v4"
)

type ClientRouter struct {
	ClientController *controller.ClientController
}

func NewClientRouter(ctrl *controller.ClientController) *ClientRouter {
	return &ClientRouter{ClientController: ctrl}
}

// Setup registers client routes. The address book is staff-facing, so every
// route requires a session; deactivation is admin only.
func (r *ClientRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	private := e.Group("/api/v1/private", mw.AuthMiddleware())

	private.POST("/clients", r.ClientController.Create)
	private.GET("/clients", r.ClientController.List)
	private.GET("/clients/:id", r.ClientController.GetByID)
	private.GET("/clients/tax/:taxId", r.ClientController.GetByTaxID)
	private.PUT("/clients/:id", r.ClientController.Update)
	private.POST("/clients/:id/photo", r.ClientController.UploadPhoto)
	private.DELETE("/clients/:id", r.ClientController.Delete, mw.AdminMiddleware())
}
