package schedule

import (
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/modules/schedule/controller"
	"agenda-api/modules/schedule/repository"
	"agenda-api/modules/schedule/router"
	"agenda-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the schedule module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewScheduleRepository(&db)
	svc := service.NewScheduleService(repo)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}
