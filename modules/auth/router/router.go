package router

import (
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: ctrl}
}

// Setup registers auth routes.
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", r.AuthController.Signup)
	auth.POST("/signin", r.AuthController.Signin)
	auth.POST("/refresh", r.AuthController.Refresh)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/auth/signout", r.AuthController.Signout)
	private.GET("/auth/me", r.AuthController.Me)
	private.PUT("/auth/profile", r.AuthController.UpdateProfile)
	private.GET("/users", r.AuthController.ListUsers, mw.AdminMiddleware())
}
