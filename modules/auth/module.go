package auth

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/auth/controller"
	"agenda-api/modules/auth/repository"
	"agenda-api/modules/auth/router"
	"agenda-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(&db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
