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

	httpadapter "github.com/couchcryptid/ajudejf/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ajudejf/internal/adapter/kafka"
	"github.com/couchcryptid/ajudejf/internal/adapter/recordstore"
	"github.com/couchcryptid/ajudejf/internal/adapter/web"
	"github.com/couchcryptid/ajudejf/internal/city"
	"github.com/couchcryptid/ajudejf/internal/config"
	"github.com/couchcryptid/ajudejf/internal/directory"
	"github.com/couchcryptid/ajudejf/internal/intake"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const sessionPruneInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := recordstore.Open(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to open record store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	// Submission events are optional (KAFKA_BROKERS / KAFKA_ENABLED).
	var (
		publisher intake.Publisher
		events    *kafkaadapter.Publisher
	)
	if cfg.KafkaEnabled {
		events = kafkaadapter.NewPublisher(cfg, metrics, logger)
		publisher = events
		logger.Info("submission events enabled", "topic", cfg.KafkaSubmissions, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("submission events disabled")
	}

	resolver := city.NewCachedResolver(city.NewStoreResolver(store, logger), metrics)
	controller := intake.NewController(resolver, store, publisher, cfg.Location, logger, metrics)
	sessions := intake.NewSessionStore(cfg.SessionTTL, clockwork.NewRealClock(), metrics)
	dir := directory.NewService(store, cfg.DirectoryLimit, logger, metrics)

	app := web.NewHandler(controller, sessions, dir, cfg.SessionCookieSecure, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, store, app.Routes(), logger)

	g, gctx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Expire idle intake sessions.
	g.Go(func() error {
		sessions.Run(gctx, sessionPruneInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if events != nil {
		controller.Wait()
		if err := events.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	closeStore()

	logger.Info("shutdown complete")
}
