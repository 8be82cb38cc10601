package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/inkwellhq/resumepress/internal/config"
	"github.com/inkwellhq/resumepress/internal/export"
	"github.com/inkwellhq/resumepress/internal/storage"
	"github.com/inkwellhq/resumepress/internal/web"
)

// Runner holds per-invocation dependencies for the CLI commands.
type Runner struct{}

func (r *Runner) setup(ctx context.Context, cmd *cli.Command) (config.Config, *log.Logger, storage.Store, func(), error) {
	logger := NewLogger(cmd.Bool("verbose"))

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Bool("memory") || cfg.Storage.InMemory {
		store := storage.NewMemoryStore(logger.With("component", "storage"))
		return cfg, logger, store, func() {}, nil
	}

	store, err := storage.OpenBunStore(ctx, cfg.Storage.Path, logger.With("component", "storage"))
	if err != nil {
		return config.Config{}, nil, nil, nil, fmt.Errorf("open store at %s: %w", cfg.Storage.Path, err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}
	return cfg, logger, store, cleanup, nil
}

// Serve starts the web application and blocks until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, store, cleanup, err := r.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	app, err := web.NewApp(cfg, logger, store)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("browser close failed", "err", err)
		}
	}()

	srv, err := app.Fiber()
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- srv.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	return nil
}

// ResetPayment clears the stored payment flag.
func (r *Runner) ResetPayment(ctx context.Context, cmd *cli.Command) error {
	_, logger, store, cleanup, err := r.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.ClearPayment(ctx); err != nil {
		return fmt.Errorf("clear payment flag: %w", err)
	}
	logger.Info("payment flag cleared, downloads are locked again")
	return nil
}

// Backup writes the stored resume data to a takeout file.
func (r *Runner) Backup(ctx context.Context, cmd *cli.Command) error {
	_, logger, store, cleanup, err := r.setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ext, err := export.BackupExtension(cmd.String("format"))
	if err != nil {
		return err
	}

	data, ok, err := store.LoadResume(ctx)
	if err != nil {
		return fmt.Errorf("load resume: %w", err)
	}
	if !ok {
		return fmt.Errorf("no resume data stored, nothing to back up")
	}

	var payload []byte
	switch ext {
	case "json":
		payload, err = export.BackupJSON(data)
	case "xlsx":
		payload, err = export.BackupXLSX(data)
	}
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = export.BackupFilename(data.PersonalInfo.FullName, ext)
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	logger.Info("backup written", "path", output, "bytes", len(payload))
	return nil
}
