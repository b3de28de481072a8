// Package app assembles the service from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/shift-swap-service/internal/api/http"
	"github.com/spec-kit/shift-swap-service/internal/api/http/handlers"
	"github.com/spec-kit/shift-swap-service/internal/auth"
	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/events"
	"github.com/spec-kit/shift-swap-service/internal/observability"
	"github.com/spec-kit/shift-swap-service/internal/persistence"
	"github.com/spec-kit/shift-swap-service/internal/schedule"
	"github.com/spec-kit/shift-swap-service/internal/seed"
	"github.com/spec-kit/shift-swap-service/internal/service"
	"github.com/spec-kit/shift-swap-service/internal/session"
	"github.com/spec-kit/shift-swap-service/internal/worker"
)

const shutdownTimeout = 5 * time.Second

// Storage is session storage that can report its health.
type Storage interface {
	session.Storage
	handlers.Pinger
}

// App is the wired service.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	HTTP     *fiber.App
	Schedule *schedule.Store
	Sessions *session.Manager
	closers  []func()
}

// New builds the service. A nil storage selects the backend named by
// cfg.Session.Storage.
func New(cfg *config.Config, logger *zap.Logger, storage Storage) (*App, error) {
	data, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: logger}
	if storage == nil {
		storage = a.openStorage()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notifications, logger)

	a.Schedule = schedule.NewStore(
		schedule.WithDispatcher(dispatcher),
		schedule.WithLogger(logger),
		schedule.WithShifts(data.Shifts),
	)
	a.Sessions = session.NewManager(session.NewDirectory(data.Users), storage, cfg.Session.KeyPrefix, session.Options{
		LoginDelay:      cfg.Session.LoginDelay(),
		RegisterDelay:   cfg.Session.RegisterDelay(),
		VerifyPasswords: cfg.Auth.VerifyPasswords,
		Hasher:          auth.BcryptHasher{Cost: cfg.Auth.BcryptCost},
		Logger:          logger,
	})

	authService := service.NewAuthService(*cfg, a.Sessions)
	metrics := observability.NewMetrics()

	a.HTTP = httptransport.NewServer(logger, metrics, httptransport.ServerOptions{
		AppName:        cfg.App.Name,
		BodyLimit:      int(cfg.Import.MaxBytes) + 1024*1024,
		RequestTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterRoutes(a.HTTP, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
			map[string]handlers.Pinger{"session_storage": storage}, metrics),
		Users:          handlers.NewUsersHandler(authService),
		Dashboard:      handlers.NewDashboardHandler(a.Schedule, data),
		Shifts:         handlers.NewShiftsHandler(a.Schedule, logger, cfg.Import.MaxBytes),
		Swaps:          handlers.NewSwapsHandler(a.Schedule),
		Notifications:  handlers.NewNotificationsHandler(a.Schedule),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), a.Sessions),
	})

	logger.Info("service assembled",
		zap.String("session_storage", cfg.Session.Storage),
		zap.Int("users", len(data.Users)),
		zap.Int("stores", len(data.Stores)),
		zap.Int("shifts", len(data.Shifts)))
	return a, nil
}

func (a *App) openStorage() Storage {
	if a.cfg.Session.Storage == config.StorageRedis {
		r := persistence.NewRedis(a.cfg.Redis, a.logger)
		a.closers = append(a.closers, r.Close)
		return persistence.NewRedisStorage(r.Client)
	}
	return persistence.NewMemoryStorage()
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("http listening", zap.String("addr", a.cfg.App.Addr()))
		if err := a.HTTP.Listen(a.cfg.App.Addr()); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if err := a.HTTP.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close releases external connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
