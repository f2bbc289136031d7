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

	httpadapter "github.com/kirillkom/library-searchbox/internal/adapters/http"
	"github.com/kirillkom/library-searchbox/internal/bootstrap"
	"github.com/kirillkom/library-searchbox/internal/config"
	"github.com/kirillkom/library-searchbox/internal/observability/logging"
)

const serviceName = "searchbox-api"

func main() {
	if err := run(); err != nil {
		slog.Error("api_failed", "error", err)
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

	app, err := bootstrap.New(ctx, cfg, bootstrap.RoleAPI, serviceName)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	deps := httpadapter.Dependencies{
		Resolver:  app.Resolver,
		Fetcher:   app.Suggester,
		Grouper:   app.Grouper,
		Navigator: app.Navigator,
		Metrics:   app.HTTPMetrics,
	}
	if app.Events != nil {
		deps.Events = app.Events
	}
	router, err := httpadapter.NewRouter(cfg, deps)
	if err != nil {
		return fmt.Errorf("init router: %w", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort, "analytics", cfg.AnalyticsEnabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
