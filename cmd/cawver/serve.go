package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cawver-web/internal/app"
	"cawver-web/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			logger.Info("Starting cawver", nil)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := app.New(cfg, app.Options{BaseContext: ctx})
			if err != nil {
				logger.Error(err, "Failed to initialize application", nil)
				return err
			}

			serverErr := make(chan error, 1)
			go func() {
				if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error(err, "Failed to start server", nil)
					serverErr <- err
				}
			}()

			var runErr error
			select {
			case <-ctx.Done():
				logger.Info("Shutting down server...", nil)
			case runErr = <-serverErr:
				logger.Error(runErr, "Server error occurred, initiating shutdown", nil)
				stop()
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := application.Shutdown(shutdownCtx); err != nil {
				logger.Error(err, "Server forced to shutdown", nil)
				return err
			}

			logger.Info("Server exited gracefully", nil)
			return runErr
		},
	}
}
