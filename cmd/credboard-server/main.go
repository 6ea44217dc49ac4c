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

	"github.com/existflow/credboard/internal/db"
	"github.com/existflow/credboard/internal/fixture"
	"github.com/existflow/credboard/internal/logger"
	"github.com/existflow/credboard/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		port     string
		dbURL    string
		seed     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "credboard-server",
		Short: "Serve sections, credentials and attachments for local runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logCfg := logger.DefaultConfig()
			logCfg.Level = logger.ParseLevel(logLevel)
			logCfg.Console = true
			logCfg.FilePath = ""
			if err := logger.Init(logCfg); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, dbURL)
			if err != nil {
				logger.Error("Failed to create server", logger.F("error", err))
				return err
			}
			defer func() {
				if err := srv.Close(); err != nil {
					logger.Error("Error closing server", logger.F("error", err))
				}
			}()

			if seed != "" {
				f, err := fixture.Load(seed)
				if err != nil {
					return err
				}
				if err := f.Seed(ctx, srv.Store()); err != nil {
					return fmt.Errorf("failed to seed: %w", err)
				}
				logger.Info("Fixture loaded",
					logger.F("source", seed),
					logger.F("sections", len(f.Sections)),
					logger.F("credentials", len(f.Credentials)))
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(":" + port) }()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Server failed", logger.F("error", err))
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", envOr("PORT", "8000"), "listen port")
	cmd.Flags().StringVar(&dbURL, "db", envOr("DATABASE_URL", db.DefaultDSN), "database DSN (SQLite path or postgres:// URL)")
	cmd.Flags().StringVar(&seed, "seed", "", `yaml fixture to load on start ("sample" for the built-in set)`)
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "INFO"), "log level (DEBUG, INFO, WARN, ERROR)")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
