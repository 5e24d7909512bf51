package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clearance/cmd"
	"clearance/internal/adapters/out/postgres/auditrepo"
	"clearance/internal/adapters/out/postgres/bidrepo"
	"clearance/internal/adapters/out/postgres/jobrepo"
	"clearance/internal/adapters/out/postgres/noterepo"
	"clearance/internal/adapters/out/postgres/orderrepo"
	"clearance/internal/pkg/logger"
	"clearance/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Absence of a .env file is fine in containerized deployments.
	_ = godotenv.Load(".env")

	config, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "clearance",
		Level:       config.LogLevel,
		Format:      config.LogFormat,
	})

	metrics.Init()

	gormDB, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to postgres failed")
	}

	if err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&bidrepo.BidDTO{},
		&noterepo.NoteDTO{},
		&jobrepo.JobDTO{},
		&auditrepo.AuditEntryDTO{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrating schema failed")
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building composition root failed")
	}

	jobManager, err := root.CreateJobManager()
	if err != nil {
		log.Fatal().Err(err).Msg("building job manager failed")
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatal().Err(err).Msg("starting background jobs failed")
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if serveErr := e.Start(address); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Fatal().Err(serveErr).Msg("http server failed")
		}
	}()
	log.Info().Str("port", config.HTTPPort).Msg("clearance service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
