package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/inventory/internal/cli"
	"github.com/mmynk/inventory/internal/config"
	"github.com/mmynk/inventory/internal/metrics"
	"github.com/mmynk/inventory/internal/service"
	"github.com/mmynk/inventory/internal/storage"
	"github.com/mmynk/inventory/internal/storage/sqlite"
	"github.com/mmynk/inventory/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, in io.Reader, out, errOut io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errOut, "configuration error:", err)
		return 1
	}

	logger, closer, err := logging.Open(logging.Options{
		Path:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Console: cfg.LogConsole,
		Stderr:  errOut,
	})
	if err != nil {
		fmt.Fprintln(errOut, "logging error:", err)
		return 1
	}
	defer closer.Close()
	slog.SetDefault(logger)

	store := openStore(ctx, cfg.DBPath, logger)
	defer store.Close()
	logger.Info("Starting", "config", cfg.String())

	m := metrics.New()
	authSvc := service.NewAuthService(store, m, logger)
	inventory := service.NewInventoryService(store, m, logger)

	// Bootstrap failures are logged by the service; the menu still starts.
	if generated, err := authSvc.Bootstrap(ctx, cfg.AdminPassword); err == nil && generated != "" {
		fmt.Fprintf(out, "Created user %q with password: %s\n", service.AdminUsername, generated)
		fmt.Fprintln(out, "Store it now; it will not be shown again.")
	}

	app := cli.New(authSvc, inventory, logger, in, out)
	runErr := app.Run(ctx)
	if runErr != nil {
		logger.Error("Session ended with error", "error", runErr)
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			logger.Error("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}

// openStore opens the SQLite database. When that fails the error is logged
// and a store that reports every call as unavailable is returned instead.
func openStore(ctx context.Context, path string, logger *slog.Logger) storage.Store {
	store, err := sqlite.New(ctx, path)
	if err != nil {
		logger.Error("Failed to initialize storage", "database", path, "error", err)
		return storage.Unavailable{Cause: err}
	}
	logger.Info("Storage initialized", "database", path)
	return store
}
