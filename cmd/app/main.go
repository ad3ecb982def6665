// Command app runs the PlantTycoon garden service: the HTTP API, the
// decay, completion and notification jobs, and the gardener store.
//
// @title PlantTycoon API
// @version 1.0
// @description Grow plants, look after them and earn Gro-cash.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/PlantTycoon_Go/internal/bootstrap"
	"github.com/osse101/PlantTycoon_Go/internal/config"
	"github.com/osse101/PlantTycoon_Go/internal/garden"
	"github.com/osse101/PlantTycoon_Go/internal/handler"
	"github.com/osse101/PlantTycoon_Go/internal/scheduler"
	"github.com/osse101/PlantTycoon_Go/internal/server"
	"github.com/osse101/PlantTycoon_Go/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("PlantTycoon exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	// Passes and requests run on a context that outlives the shutdown
	// signal so in-flight work can finish.
	ctx := context.Background()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	repo, dbPool, err := bootstrap.OpenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStore(ctx, repo, cfg.StoreBackend)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return err
	}

	bk, redisClient, err := bootstrap.OpenBank(ctx, cfg)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return err
	}

	_, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	sink, notifyPool, discord, err := bootstrap.OpenNotifier(cfg)
	if err != nil {
		return err
	}

	svc := garden.NewService(store, cat, bk, publisher)
	reconciler := garden.NewReconciler(store, cat, publisher)

	sched := scheduler.New()
	pass := worker.PassConfig{
		Users:       store,
		Reconciler:  reconciler,
		Sink:        sink,
		Concurrency: cfg.PassConcurrency,
	}
	if err := bootstrap.ScheduleGardenJobs(sched, cat.Defaults.Timers, pass); err != nil {
		return err
	}

	pingers := []handler.NamedPinger{}
	if dbPool != nil {
		pingers = append(pingers, handler.NamedPinger{Name: "database", Pinger: dbPool})
	}
	if redisClient != nil {
		pingers = append(pingers, handler.NamedPinger{Name: "redis", Pinger: bootstrap.RedisPinger{Client: redisClient}})
	}

	srv := server.NewServer(server.Options{
		Port:    cfg.Port,
		APIKey:  cfg.APIKey,
		Pingers: pingers,
		Garden:  handler.NewGardenHandler(svc),
	})

	components := bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		NotifyPool:         notifyPool,
		Store:              store,
		ResilientPublisher: publisher,
		Discord:            discord,
		DBPool:             dbPool,
		Redis:              redisClient,
	}

	if err := sched.Start(ctx); err != nil {
		bootstrap.GracefulShutdown(ctx, components)
		return fmt.Errorf("%s: %w", bootstrap.ErrMsgFailedStartScheduler, err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, components)

	return runErr
}
