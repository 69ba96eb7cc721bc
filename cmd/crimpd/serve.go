package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"manufacturing-backend/internal/api"
	"manufacturing-backend/internal/db"
	"manufacturing-backend/internal/store"
)

func serveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	loc, err := time.LoadLocation(a.cfg.App.Timezone)
	if err != nil {
		return err
	}
	appStore := store.NewGormStore(gormDB, store.Options{Location: loc})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(appStore, a.log, api.Options{
		BasePath:    a.cfg.Server.BasePath,
		Version:     version,
		RateLimit:   a.cfg.Server.RateLimitPerSec,
		RateBurst:   a.cfg.Server.RateLimitBurst,
		CacheTTL:    a.cfg.Server.CacheTTL,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		Location:    loc,
		Registry:    reg,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server starting", zap.Int("port", a.cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error("HTTP server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info("Shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("HTTP server shutdown", zap.Error(err))
		return err
	}

	a.log.Info("Server gracefully stopped")
	return nil
}
