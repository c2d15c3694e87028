package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/server"
	"github.com/oncokb/kbtip/internal/tooltip"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tooltip HTTP service",
	Long: `Run the tooltip HTTP service.

Routes:
  GET  /health
  POST /api/v1/tooltips        resolve a tooltip
  GET  /api/v1/levels[/{code}] level descriptions
  GET  /api/v1/ref/...         reference endpoint proxies
  GET  /metrics                Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// newLogger builds a production logger at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	table := mustLoadLevels(cfg)

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		exitWithError(ExitConfigError, "invalid log level %q: %v", cfg.LogLevel, err)
	}
	defer logger.Sync()

	client := api.NewClientFromConfig(cfg, api.WithLogger(logger.Named("api")))
	resolver := tooltip.NewResolver(client, table, tooltip.WithLogger(logger.Named("tooltip")))

	srv, err := server.New(client, resolver, table,
		server.WithLogger(logger.Named("http")),
		server.WithCORSOrigins(cfg.CORSOrigins),
	)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.Int("levels", table.Len()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
