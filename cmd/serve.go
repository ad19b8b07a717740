package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/wellplan/internal/config"
	"github.com/papapumpkin/wellplan/internal/dataset"
	"github.com/papapumpkin/wellplan/internal/fieldopt"
	"github.com/papapumpkin/wellplan/internal/server"
	"github.com/papapumpkin/wellplan/internal/session"
	"github.com/papapumpkin/wellplan/internal/ui"
	"github.com/papapumpkin/wellplan/internal/wellstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the layout session over HTTP",
	Long: `Starts an HTTP API over a single layout session. Well inputs are stored
in SQLite and compute requests are forwarded to the FieldOpt solver. With
--watch, dataset files are reloaded as they change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("watch", false, "reload datasets when files change")
	serveCmd.Flags().String("db", "", "SQLite database path (default wellplan.db)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Listen = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetBool("watch"); v {
		cfg.WatchDatasets = true
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, cleanup, err := openSession(cfg, verboseWriter(cfg.Verbose))
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := wellstore.NewSQLiteStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	solver := fieldopt.NewClient(fieldopt.ClientConfig{
		BaseURL: cfg.FieldOpt.BaseURL,
		Timeout: cfg.FieldOpt.Timeout,
		Retries: cfg.FieldOpt.Retries,
	}, logger)

	if cfg.WatchDatasets && cfg.DatasetDir != "" {
		w, err := dataset.NewWatcher(cfg.DatasetDir)
		if err != nil {
			return fmt.Errorf("dataset watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("dataset watcher: %w", err)
		}
		defer w.Stop()
		go reloadOnChange(w, sess, func(err error) {
			if err != nil {
				logger.Warn("dataset reload failed", zap.String("dir", cfg.DatasetDir), zap.Error(err))
				return
			}
			logger.Info("datasets reloaded", zap.String("dir", cfg.DatasetDir))
		})
	}

	srv := &http.Server{
		Addr: cfg.Listen,
		Handler: server.New(server.Options{
			Session:    sess,
			Store:      store,
			Solver:     solver,
			DatasetDir: cfg.DatasetDir,
			Logger:     logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()
	ui.New().ServeStarted(cfg.Listen)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reloadOnChange reloads the session's datasets for every settled change
// reported by w, calling done with the outcome. It returns when w stops.
func reloadOnChange(w *dataset.Watcher, sess *session.Session, done func(error)) {
	for range w.Changes {
		// Drain changes that settled together.
		for drained := false; !drained; {
			select {
			case _, ok := <-w.Changes:
				if !ok {
					return
				}
			default:
				drained = true
			}
		}
		done(sess.ReloadDatasets(w.Dir))
	}
}
