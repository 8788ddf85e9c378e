package client

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/core/storage"
	"agenda-api/modules/client/controller"
	"agenda-api/modules/client/repository"
	"agenda-api/modules/client/router"
	"agenda-api/modules/client/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the client module and registers routes.
func Init(e *echo.Echo, db database.Database, st storage.Storage, mw *middleware.Middleware) {
	repo := repository.NewClientRepository(&db)
	svc := service.NewClientService(repo, st)
	ctrl := controller.NewClientController(svc)
	rtr := router.NewClientRouter(ctrl)

	rtr.Setup(e, mw)
}
