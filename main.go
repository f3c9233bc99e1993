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

	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api/handlers"
	"github.com/linesmerrill/car-rental-api/api/scheduler"
	"github.com/linesmerrill/car-rental-api/config"
	"github.com/linesmerrill/car-rental-api/databases"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//initialize database and router
	if err := a.Initialize(ctx); err != nil {
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	s := scheduler.NewScheduler(
		databases.NewUserOrderDatabase(a.Database()),
		databases.NewSchedulerLockDatabase(a.Database()),
		a.Config.Location,
	)
	if err := s.Start(a.Config.CompletionSchedule); err != nil {
		zap.S().Fatalw("failed to start scheduler", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zap.S().Infow("car-rental-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnw("failed to shut down server", "error", err)
	}
	s.Stop()
	a.Close(shutdownCtx)
	_ = zap.L().Sync()
}
