package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinoosan/volley/internal/bank"
	"github.com/tinoosan/volley/internal/config"
	"github.com/tinoosan/volley/internal/httpapi"
	"github.com/tinoosan/volley/internal/storage/memory"
	pgstore "github.com/tinoosan/volley/internal/storage/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the volley command. Flag defaults come from the environment.
func newRootCmd() *cobra.Command {
	cfg := config.FromEnv()
	var devSeed bool
	cmd := &cobra.Command{
		Use:   "volley",
		Short: "Run the bank directory HTTP service",
		Long: `Run the bank directory HTTP service on /api/banks.

Records are kept in memory unless --database-url (or DATABASE_URL) points at
Postgres. The memory store is seeded with a small default set, or with the
records from --seed-file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("dev-seed") {
				cfg.DevSeed = &devSeed
			}
			return serve(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (ADDR)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error (LOG_LEVEL)")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "json|text (LOG_FORMAT)")
	f.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string; empty uses the memory store (DATABASE_URL)")
	f.StringVar(&cfg.SeedFile, "seed-file", cfg.SeedFile, "YAML file of banks to preload (SEED_FILE)")
	f.BoolVar(&devSeed, "dev-seed", cfg.SeedEnabled(), "preload seed records on start (DEV_SEED)")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	var seed []bank.Bank
	if cfg.SeedEnabled() {
		s, err := cfg.Seed()
		if err != nil {
			logger.Error("failed to load seed", "err", err)
			return err
		}
		seed = s
	}

	var srvMux http.Handler
	var closeFn func()

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			return err
		}
		closeFn = pg.Close
		if err := pg.Migrate(ctx); err != nil {
			logger.Error("migration failed", "err", err)
			pg.Close()
			return err
		}
		if len(seed) > 0 {
			n, err := pg.SeedDev(ctx, seed...)
			if err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logDevSeed(logger, "postgres", seed, n)
			}
		}
		srvMux = httpapi.New(pg, pg, logger).Handler()
		logger.Info("storage backend: postgres")
	} else {
		store := memory.New()
		store.Seed(seed...)
		logDevSeed(logger, "memory", seed, len(seed))
		srvMux = httpapi.New(store, store, logger).Handler()
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srvMux,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("volley listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
		runErr = err
	}
	if closeFn != nil {
		closeFn()
	}
	return runErr
}

// logDevSeed records which account numbers were preloaded.
func logDevSeed(l *slog.Logger, backend string, seed []bank.Bank, inserted int) {
	if len(seed) == 0 {
		return
	}
	nums := make([]string, 0, len(seed))
	for _, b := range seed {
		nums = append(nums, b.AccountNumber)
	}
	l.Info("DEV seed ("+backend+")", "account_numbers", strings.Join(nums, ","), "inserted", inserted)
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	case "json", "":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	default:
		fmt.Fprintf(os.Stderr, "unknown log format %q, using json\n", format)
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
}
