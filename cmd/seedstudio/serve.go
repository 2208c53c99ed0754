package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/seedstudio/internal/database"
	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/schema"
	"github.com/dukerupert/seedstudio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		srv := server.New(db, server.Config{
			Policy:         garden.Policy{AllowNegativeStock: cfg.AllowNegativeStock},
			S3:             cfg.S3,
			Push:           cfg.Push,
			PushHour:       cfg.PushHour,
			OriginPatterns: cfg.OriginPatterns,
		}, logger)

		res, err := schema.Migrate(srv.Slots(), logger)
		if err != nil {
			return err
		}
		logger.Info("data ready", "schema_version", res.To, "photos_in_s3", cfg.S3.Enabled(), "push", cfg.Push.Enabled())

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go srv.RateLimiter().Run(ctx, 5*time.Minute)
		if sched := srv.PushScheduler(); sched != nil {
			sched.Start(ctx)
			defer sched.Stop()
		}

		httpServer := &http.Server{
			Addr:         cfg.Addr,
			Handler:      srv.Router(),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("seed studio running", "addr", cfg.Addr, "db", cfg.DBPath)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("stopped")
		return nil
	},
}
