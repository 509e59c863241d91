package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/viper"

	"dailydiet/internal/config"
	"dailydiet/internal/database"
	"dailydiet/internal/handlers"
	"dailydiet/internal/logging"
	"dailydiet/internal/middleware"
	"dailydiet/internal/repositories"
	"dailydiet/internal/services"
	"dailydiet/pkg/rabbitmq"
)

// store groups the repositories the app runs on.
type store struct {
	users repositories.UserRepository
	meals repositories.MealRepository
	// ping is nil for the in-memory store.
	ping  func(ctx context.Context) error
	close func() error
}

func main() {
	if err := run(viper.GetViper(), openStore); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run starts the server and blocks until it is stopped. Resources opened
// here are released before it returns.
func run(v *viper.Viper, open func(*config.Config) (store, error)) error {
	// --- Configuration ---
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	// --- Sentry ---
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// --- Store ---
	st, err := open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.DatabaseDriver, err)
	}
	defer func() {
		if err := st.close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				slog.Error("failed to close RabbitMQ client", "error", err)
			}
		}()
		events = mqClient

		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			slog.Error("failed to start RabbitMQ consumer", "error", err)
		}
	} else {
		slog.Info("RABBITMQ_URL not set, event publishing disabled")
	}

	app := newApp(cfg, st, events)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.AppPort, "env", cfg.AppEnv)
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("error during Fiber shutdown", "error", err)
	}
	slog.Info("server gracefully stopped")
	return nil
}

// newApp wires services, handlers and middleware into a Fiber app.
func newApp(cfg *config.Config, st store, events services.EventPublisher) *fiber.App {
	order := repositories.OrderInsertion
	if cfg.StreakOrder == config.StreakOrderChronological {
		order = repositories.OrderChronological
	}

	userService := services.NewUserService(st.users, events)
	mealService := services.NewMealService(st.meals, events, order)

	sessions := middleware.NewSessionIssuer(middleware.SessionConfig{
		CookieName: cfg.SessionCookieName,
		Path:       cfg.SessionCookiePath,
		MaxAge:     cfg.SessionMaxAge,
		Secure:     cfg.SessionCookieSecure,
	})

	app := fiber.New(fiber.Config{
		AppName:      "dailydiet",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	// recover wraps Sentry so repanicked errors are still answered.
	app.Use(recover.New())
	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	// --- Routes ---
	handlers.NewHealthHandler(st.ping).RegisterRoutes(app)
	handlers.NewUserHandler(userService, sessions).RegisterRoutes(app)
	handlers.NewMealHandler(mealService).RegisterRoutes(app, sessions.RequireSession())

	return app
}

// openStore returns the repositories for the configured driver.
func openStore(cfg *config.Config) (store, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		slog.Warn("using in-memory store, data is lost on restart")
		return store{
			users: repositories.NewMockUserRepository(),
			meals: repositories.NewMockMealRepository(),
			close: func() error { return nil },
		}, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return store{}, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return store{}, err
	}
	return store{
		users: repositories.NewGORMUserRepository(db),
		meals: repositories.NewGORMMealRepository(db),
		ping:  func(ctx context.Context) error { return database.Ping(ctx, db) },
		close: func() error { return database.Close(db) },
	}, nil
}
