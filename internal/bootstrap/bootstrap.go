package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/kirillkom/library-searchbox/internal/config"
	"github.com/kirillkom/library-searchbox/internal/core/ports"
	"github.com/kirillkom/library-searchbox/internal/core/usecase"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/analytics"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/nameapi"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/queue/nats"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/resilience"
	"github.com/kirillkom/library-searchbox/internal/observability/metrics"
)

// Role selects which collaborators a process needs.
type Role int

const (
	// RoleAPI serves HTTP and publishes events when analytics is enabled.
	RoleAPI Role = iota
	// RoleWorker consumes events and stores them.
	RoleWorker
	// RoleCLI drives a terminal search box and logs events locally.
	RoleCLI
)

type App struct {
	Config config.Config

	Resolver  *usecase.ResolveUseCase
	Suggester *usecase.SuggestUseCase
	Grouper   *usecase.Grouper
	Navigator *usecase.Dispatcher

	Queue    ports.EventQueue
	Events   ports.SearchEventReader
	Recorder *usecase.RecordEventUseCase

	HTTPMetrics   *metrics.HTTPServerMetrics
	WorkerMetrics *metrics.WorkerMetrics

	closers []func()
}

func New(ctx context.Context, cfg config.Config, role Role, service string) (*App, error) {
	app := &App{Config: cfg}
	switch role {
	case RoleAPI:
		app.HTTPMetrics = metrics.NewHTTPServerMetrics(service)
	case RoleWorker:
		app.WorkerMetrics = metrics.NewWorkerMetrics(service)
	}

	policy := resilienceConfig(cfg)
	slog.Info("resilience_policy",
		"max_attempts", policy.RetryMaxAttempts,
		"retry_sleep_ms", policy.RetrySleep().Milliseconds(),
		"breaker_enabled", policy.BreakerEnabled,
		"breaker_open_timeout", policy.BreakerOpenTimeout.String(),
	)
	executor := resilience.NewExecutor(policy, resilience.WithStateObserver(app.observeBreaker))

	names := nameapi.NewWithOptions(cfg.NameAPIURL, nameapi.Options{
		Timeout:            cfg.NameAPITimeout,
		ResilienceExecutor: executor,
	})
	app.Resolver = usecase.NewResolveUseCase(names)
	app.Suggester = usecase.NewSuggestUseCase(names, usecase.IdentityLocalizer{}, usecase.SuggestOptions{
		MinChars: cfg.SuggestMinChars,
		Limit:    cfg.SuggestLimit,
	})
	app.Grouper = usecase.NewGrouper(cfg.SuggestFoldTopics)

	var tracker ports.EventTracker = analytics.NewLogTracker(slog.Default())
	needsPipeline := role == RoleWorker || (role == RoleAPI && cfg.AnalyticsEnabled)
	if needsPipeline {
		queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.SearchEventsSubject, nats.Options{
			ClientName:         service,
			ResilienceExecutor: executor,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("init event queue: %w", err)
		}
		app.closers = append(app.closers, queue.Close)
		app.Queue = queue

		repo, err := openEventRepository(ctx, cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = repo.db.Close() })
		app.Events = repo.events
		app.Recorder = usecase.NewRecordEventUseCase(repo.events)

		if role == RoleAPI {
			tracker = usecase.NewQueueTracker(queue)
		}
	}
	app.Navigator = usecase.NewDispatcher(tracker)

	return app, nil
}

type eventStore struct {
	db     *sql.DB
	events *postgres.SearchEventRepository
}

func openEventRepository(ctx context.Context, cfg config.Config) (eventStore, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return eventStore{}, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewSearchEventRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return eventStore{}, fmt.Errorf("ensure schema: %w", err)
	}
	return eventStore{db: db, events: repo}, nil
}

func (a *App) observeBreaker(operation string, from, to gobreaker.State) {
	if a.HTTPMetrics != nil {
		a.HTTPMetrics.SetBreakerState(operation, to.String())
	}
}

// resilienceConfig sizes the policy from the name lookup timeout and applies
// the explicitly configured settings on top.
func resilienceConfig(cfg config.Config) resilience.Config {
	out := resilience.ForLookupBudget(cfg.NameAPITimeout)
	if cfg.RetryMaxAttempts > 0 {
		out.RetryMaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryInitialBackoff > 0 {
		out.RetryInitialBackoff = cfg.RetryInitialBackoff
	}
	if cfg.RetryMaxBackoff > 0 {
		out.RetryMaxBackoff = cfg.RetryMaxBackoff
	}
	out.BreakerEnabled = cfg.BreakerEnabled
	if cfg.BreakerMinRequests > 0 {
		out.BreakerMinRequests = uint32(cfg.BreakerMinRequests)
	}
	if cfg.BreakerFailureRatio > 0 {
		out.BreakerFailureRatio = cfg.BreakerFailureRatio
	}
	if cfg.BreakerOpenTimeout > 0 {
		out.BreakerOpenTimeout = cfg.BreakerOpenTimeout
	}
	return out
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
