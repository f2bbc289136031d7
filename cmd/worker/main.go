package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/library-searchbox/internal/bootstrap"
	"github.com/kirillkom/library-searchbox/internal/config"
	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/observability/logging"
)

const serviceName = "searchbox-worker"

func main() {
	if err := run(); err != nil {
		slog.Error("worker_failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Setup(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.RoleWorker, serviceName)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	workerMetrics := app.WorkerMetrics
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.SearchEventsSubject)
	err = app.Queue.SubscribeSearchEvents(ctx, func(handlerCtx context.Context, event domain.SearchEvent) error {
		start := time.Now()
		workerMetrics.StartEvent()
		if !event.OccurredAt.IsZero() {
			workerMetrics.ObserveEventLag(start.Sub(event.OccurredAt))
		}

		recordCtx, cancel := context.WithTimeout(handlerCtx, 10*time.Second)
		defer cancel()
		err := app.Recorder.Record(recordCtx, event)
		workerMetrics.FinishEvent(event.Action, time.Since(start), err)
		return err
	})
	if err != nil {
		return fmt.Errorf("subscribe search events: %w", err)
	}
	return nil
}
