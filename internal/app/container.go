package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-delivery-slots/internal/catalog"
	"service-delivery-slots/internal/config"
	"service-delivery-slots/internal/http/handlers"
	"service-delivery-slots/internal/http/router"
	"service-delivery-slots/internal/logx"
	"service-delivery-slots/internal/ports/ledger"
	"service-delivery-slots/internal/repository"
	"service-delivery-slots/internal/service/booking"
	"service-delivery-slots/internal/service/methods"
	"service-delivery-slots/internal/service/slots"
	"service-delivery-slots/internal/storage/memory"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerStorage(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerEvents(container); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

// registerStorage picks the ledger backend. The pool is nil for the memory
// backend; the runner skips closing it in that case.
func registerStorage(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	provider := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (ledger.Ledger, *pgxpool.Pool, error) {
		if cfg.Storage == config.StorageMemory {
			logger.Info("using in-memory reservation ledger")
			return memory.NewLedger(), nil, nil
		}

		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewReservationRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool, nil
	}
	return provideAll(container, provider)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) *methods.Registry {
			return methods.NewRegistry(cfg.Booking.HorizonDays)
		},
		catalog.New,
		func(
			registry *methods.Registry,
			cat catalog.Catalog,
			led ledger.Ledger,
			cfg *config.Config,
			logger logx.Logger,
		) *slots.Service {
			return slots.NewService(registry, cat, led, cfg.Booking.OperationTimeout, logger)
		},
		newBookingService,
	)
}

type bookingIn struct {
	dig.In

	Registry  *methods.Registry
	Catalog   catalog.Catalog
	Ledger    ledger.Ledger
	Cfg       *config.Config
	Logger    logx.Logger
	Events    booking.EventPublisher
	Commits   prometheus.Counter `name:"reservations_committed_total"`
	Conflicts prometheus.Counter `name:"reservation_conflicts_total"`
}

func newBookingService(in bookingIn) *booking.Service {
	svc := booking.NewService(in.Registry, in.Catalog, in.Ledger, in.Cfg.Booking.OperationTimeout, in.Logger)
	svc.WithCounters(in.Commits, in.Conflicts)
	return svc.WithEvents(in.Events)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewMethodLister,
		handlers.NewMethodHandler,
		handlers.NewSlotsUsecase,
		handlers.NewSlotHandler,
		handlers.NewBookingUsecase,
		handlers.NewReservationHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
	)
}
