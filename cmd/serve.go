package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/wgomg/notesift/internal/api"
	"github.com/wgomg/notesift/internal/processor"
	"github.com/wgomg/notesift/internal/utils"
)

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP JSON service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup("")
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			if port != "" {
				a.cfg.App.ServerPort = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from APP_SERVER_PORT)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	logger := a.logger
	logger.Info(nil, "Starting Document Intelligence Service")
	logger.Info(nil, "Environment: %s", a.cfg.App.Env)
	logger.Info(nil, "Log level: %s", a.cfg.App.LogLevel)
	logger.Info(nil, "Batch workers: %d", a.cfg.App.WorkerCount)

	cache, err := utils.NewResultCache[processor.Analysis](a.cfg.App.CacheSize)
	if err != nil {
		return err
	}

	handler := api.NewHandler(logger, a.processor, cache, a.cfg)
	timeout := time.Duration(a.cfg.App.HttpTimeoutSeconds) * time.Second

	srv := &http.Server{
		Addr:              "0.0.0.0:" + a.cfg.App.ServerPort,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(nil, "Starting server on port %s", a.cfg.App.ServerPort)
		logger.Info(nil, "Endpoints:")
		logger.Info(nil, "  GET  /health")
		logger.Info(nil, "  POST /clean")
		logger.Info(nil, "  POST /summarize")
		logger.Info(nil, "  POST /keyphrases")
		logger.Info(nil, "  POST /retrieve")
		logger.Info(nil, "  POST /analyze")
		logger.Info(nil, "  POST /analyze/batch")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	logger.Info(nil, "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
