package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dreis/minhasfinancas-api/internal/config"
	"github.com/dreis/minhasfinancas-api/internal/events"
	"github.com/dreis/minhasfinancas-api/internal/platform/amqp"
	"github.com/dreis/minhasfinancas-api/internal/platform/storage"
	"github.com/dreis/minhasfinancas-api/internal/service"
	"github.com/dreis/minhasfinancas-api/internal/service/auth"
)

// application holds the shared dependencies and releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend *storage.Backend

	jwtService   auth.JWTService
	authService  service.AuthService
	entryService service.EntryService

	emitter    *events.InMemoryEventEmitter
	dispatcher *events.AsyncHandler
	publisher  *amqp.Publisher
}

// newApplication opens the backend and wires every service. Resources
// acquired before a failure are released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.backend, err = storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	app.emitter = events.NewInMemoryEventEmitter(logger)
	if cfg.Events.Enabled() {
		app.publisher, err = amqp.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey, logger)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to connect event publisher: %w", err)
		}
		app.dispatcher = events.NewAsyncHandler(app.publisher, events.AsyncConfig{
			QueueSize: cfg.Events.QueueSize,
			Workers:   cfg.Events.Workers,
		}, logger)
		app.emitter.RegisterHandler(app.dispatcher)
		logger.Info("entry events published to AMQP", "exchange", cfg.Events.Exchange)
	}

	passwords := auth.NewBcryptVerifier(cfg.Auth.BCryptCost)
	app.authService = service.NewAuthService(
		app.backend.Users,
		app.backend.TxRunner,
		passwords,
		passwords,
		logger,
	)
	app.entryService = service.NewEntryService(
		app.backend.Entries,
		app.backend.TxRunner,
		app.emitter,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// cleanup drains pending events, then releases the publisher and the database.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Close()
		app.dispatcher = nil
	}
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Warn("failed to close event publisher", "error", err)
		}
		app.publisher = nil
	}
	if app.backend != nil {
		if err := app.backend.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
		app.backend = nil
	}
}
