package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-foodbot-service/internal/config"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	publisher "github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/listener"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// SessionStore is a session backend that can also report its size.
type SessionStore interface {
	domain.SessionStore
	Len(ctx context.Context) (int, error)
}

type Dependencies struct {
	Config       *config.FoodbotConfig
	Logger       *slog.Logger
	DB           *gorm.DB
	SQLDB        *sql.DB
	Registry     *prometheus.Registry
	Metrics      *metrics.BotMetrics
	Publisher    *publisher.DefaultKafkaPublisher
	Subscriber   *publisher.DefaultKafkaSubscriber
	Sessions     SessionStore
	ChangeSource domain.OrderChangeSource
	Repositories *Repositories

	closers []func() error
}

type Repositories struct {
	OrderRepo    domain.OrderRepository
	ProductRepo  domain.ProductRepository
	CustomerRepo domain.CustomerRepository
}

func InitializeDependencies(ctx context.Context, cfg *config.FoodbotConfig, logger *slog.Logger) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		SQLDB:    sqlDB,
		Registry: registry,
		Metrics:  metrics.NewBotMetrics(registry),
		Repositories: &Repositories{
			OrderRepo:    repository.NewDefaultOrderRepository(db),
			ProductRepo:  repository.NewDefaultProductRepository(db),
			CustomerRepo: repository.NewDefaultCustomerRepository(db),
		},
	}
	deps.closers = append(deps.closers, sqlDB.Close)

	if cfg.KafkaService.Enabled() {
		deps.Publisher = publisher.NewDefaultKafkaPublisher(cfg.KafkaService.Brokers)
		deps.Subscriber = publisher.NewDefaultKafkaSubscriber(cfg.KafkaService.Brokers)
		deps.closers = append(deps.closers, deps.Publisher.Close, func() error {
			deps.Subscriber.Close()
			return nil
		})
	}

	if deps.Sessions, err = initSessions(ctx, cfg, deps); err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("sessions: %w", err)
	}
	deps.ChangeSource = initChangeSource(cfg, deps)
	return deps, nil
}

func initSessions(ctx context.Context, cfg *config.FoodbotConfig, deps *Dependencies) (SessionStore, error) {
	switch cfg.Sessions.Backend {
	case "redis":
		store, err := session.NewRedisStoreFromURL(ctx, cfg.Sessions.RedisURL, cfg.Sessions.TTL)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, store.Close)
		return store, nil
	default:
		return session.NewMemoryStore(cfg.Sessions.TTL, cfg.Sessions.MaxEntries), nil
	}
}

func initChangeSource(cfg *config.FoodbotConfig, deps *Dependencies) domain.OrderChangeSource {
	if cfg.ChangeFeed.Source == "kafka" {
		return publisher.NewKafkaChangeSource(deps.Subscriber, cfg.KafkaService.OrderTopic, cfg.KafkaService.GroupID, deps.Logger)
	}
	return listener.NewOrderListener(cfg.Database.DSN(), deps.Logger)
}

// Close releases everything in reverse order of creation.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
