package appointment

import (
	"agenda-api/core/cache"
	"agenda-api/core/database"
	"agenda-api/core/middleware"
	"agenda-api/core/queue"
	"agenda-api/modules/appointment/controller"
	"agenda-api/modules/appointment/repository"
	"agenda-api/modules/appointment/router"
	"agenda-api/modules/appointment/service"
	authrepository "agenda-api/modules/auth/repository"
	authservice "agenda-api/modules/auth/service"
	schedulerepository "agenda-api/modules/schedule/repository"
	scheduleservice "agenda-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the appointment module and registers routes. The module
// wires its own view of the schedule and user services so it only depends
// on the narrow interfaces it consumes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware, q *queue.Queue) {
	repo := repository.NewAppointmentRepository(&db)
	scheduleSvc := scheduleservice.NewScheduleService(schedulerepository.NewScheduleRepository(&db))
	authSvc := authservice.NewAuthService(authrepository.NewAuthRepository(&db), c)

	var confirmations service.ConfirmationQueue
	if q != nil {
		confirmations = q
	}

	svc := service.NewAppointmentService(repo, scheduleSvc, authSvc, confirmations)
	ctrl := controller.NewAppointmentController(svc)
	rtr := router.NewAppointmentRouter(ctrl)

	rtr.Setup(e, mw)
}
