// Package main provides the Operion runner server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"

	"github.com/dukex/operion-runner/pkg/session"
	"github.com/dukex/operion-runner/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	sessions *session.Manager
	storage  web.HealthChecker
	validate *validator.Validate
}

func NewAPI(logger *slog.Logger, sessions *session.Manager, storage web.HealthChecker) *API {
	return &API{
		logger:   logger,
		sessions: sessions,
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.sessions, a.validate, a.storage)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Operion Runner")
	})

	handlers.Register(app)

	return app
}

// Start serves the API until ctx is cancelled.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	go func() {
		<-ctx.Done()

		if err := app.Shutdown(); err != nil {
			a.logger.Error("Failed to shut down API", "error", err)
		}
	}()

	a.logger.InfoContext(ctx, "Starting API", "port", port)

	err := app.Listen(net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
