package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/kubertodo/docs"
	"github.com/xyz-asif/kubertodo/internal/config"
	"github.com/xyz-asif/kubertodo/internal/pkg/logger"
	"github.com/xyz-asif/kubertodo/internal/pkg/metrics"
	"github.com/xyz-asif/kubertodo/internal/pkg/ratelimit"
	"github.com/xyz-asif/kubertodo/internal/routes"
)

const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	initLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := b.Close(closeCtx); err != nil {
			logger.Warn("store disconnect failed", "err", err)
		}
	}()
	b.prepare(ctx, cfg.Mongo.Timeout)

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	if cfg.RateLimit.Enabled {
		limiter.StartCleanup(ctx, time.Minute)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	router := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Store:    b.Store,
		Pinger:   b.Pinger,
		Registry: metrics.NewRegistry(),
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "store", cfg.Store.Driver, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func initLogger(cfg *config.Config) {
	logger.Init(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.IsProduction(),
	})
}
