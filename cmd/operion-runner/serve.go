package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dukex/operion-runner/pkg/backend"
	"github.com/dukex/operion-runner/pkg/cmd"
	"github.com/dukex/operion-runner/pkg/i18n"
	"github.com/dukex/operion-runner/pkg/lifecycle"
	"github.com/dukex/operion-runner/pkg/log"
	"github.com/dukex/operion-runner/pkg/notify"
	"github.com/dukex/operion-runner/pkg/otelhelper"
	"github.com/dukex/operion-runner/pkg/session"
	"github.com/dukex/operion-runner/pkg/state"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9092

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the runner API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence (file://path)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "locale",
				Usage:   "Locale of user-facing messages",
				Value:   "en",
				Sources: cli.EnvVars("LOCALE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("runner")

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.InfoContext(ctx, "Initializing Operion runner")

			tracer := otelhelper.NoopTracer()

			if command.Bool("tracing") {
				var (
					shutdown func(context.Context) error
					err      error
				)

				tracer, shutdown, err = otelhelper.NewTracer(ctx, "operion-runner")
				if err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}

				defer func() {
					if err := shutdown(context.Background()); err != nil {
						logger.Error("Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			messages, err := i18n.New(command.String("locale"))
			if err != nil {
				return fmt.Errorf("failed to load messages: %w", err)
			}

			persistence, err := cmd.NewPersistence(command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			root := state.NewRootStore()
			sessions := session.NewManager(
				persistence.WorkflowRepository(),
				root,
				backend.NewEventBus(eventBus, logger),
				notify.NewBus(eventBus, logger),
				messages,
				tracer,
				logger,
			)

			if err := lifecycle.NewWatcher(eventBus, sessions, root, logger).Start(ctx); err != nil {
				return err
			}

			api := NewAPI(logger, sessions, persistence)

			return api.Start(ctx, command.Int("port"))
		},
	}
}
