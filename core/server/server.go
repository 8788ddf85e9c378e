package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agenda-api/core/cache"
	"agenda-api/core/config"
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/core/middleware"
	"agenda-api/core/queue"
	"agenda-api/core/storage"
	"agenda-api/modules/appointment"
	"agenda-api/modules/auth"
	"agenda-api/modules/client"
	"agenda-api/modules/schedule"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run wires the whole application and blocks until shutdown.
func Run() error {
	config.Load()
	defer logger.Sync()

	dbCfg := config.DB()
	db, err := database.InitDB(database.DatabaseConfig{
		Host:     dbCfg.Host,
		Port:     dbCfg.Port,
		User:     dbCfg.User,
		Password: dbCfg.Password,
		DBName:   dbCfg.DBName,
	})
	if err != nil {
		return err
	}
	if err := db.RunMigrations(config.GetSafe("MIGRATIONS_PATH", "db/migrations/001_init.sql")); err != nil {
		return err
	}

	redisAddr := config.GetSafe("REDIS_ADDR", "localhost:6379")
	redisPassword := config.Get("REDIS_PASSWORD")
	c, err := cache.NewCache(redisAddr, redisPassword)
	if err != nil {
		return err
	}
	defer c.Close()

	q := queue.NewQueue(redisAddr, redisPassword)
	defer q.Close()

	worker, mux := queue.NewWorker(redisAddr, redisPassword)
	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("queue worker stopped", err)
		}
	}()

	st := storage.NewStorage()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/healthz", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mw := middleware.NewMiddleware(c)

	auth.Init(e, db, c, mw)
	schedule.Init(e, db, mw)
	appointment.Init(e, db, c, mw, q)
	client.Init(e, db, st, mw)

	port := config.GetSafe("SERVER_PORT", "7070")
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()
	logger.Info("Server started", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
