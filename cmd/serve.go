package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"folio/api/config"
	"folio/api/database"
	"folio/api/handlers"
	"folio/api/store"
	"folio/api/utils"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewSQLDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateOnStart {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	events, closeEvents, err := openEventStore(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := handlers.NewRouter(handlers.Deps{
		Log:          log,
		Projects:     store.NewProjectStore(db, log),
		Testimonials: store.NewTestimonialStore(db, log),
		Events:       events,
		Admins:       store.NewAdminStore(db, log),
		Tokens:       utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Auth:         cfg.Auth,
		CORS:         cfg.CORS,
		MaxPageSize:  cfg.Limits.MaxPageSize,
		Timeout:      cfg.HTTP.RequestTimeout,
		Ping:         db.DB.PingContext,
		Registry:     registry,
		Now:          time.Now,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("API server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exiting")
	return nil
}

// openEventStore picks the analytics backend. The returned func releases it.
func openEventStore(ctx context.Context, cfg *config.Config, db *database.DBClient, log *zap.Logger) (handlers.EventStore, func(), error) {
	if cfg.Analytics.Backend != "clickhouse" {
		return store.NewSQLEventStore(db, log), func() {}, nil
	}

	ch, err := database.NewClickHouseDB(ctx, cfg.ClickHouse, log)
	if err != nil {
		return nil, nil, err
	}
	return store.NewClickHouseEventStore(ch, log), ch.Close, nil
}
