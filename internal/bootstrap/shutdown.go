package bootstrap

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/PlantTycoon_Go/internal/event"
	"github.com/osse101/PlantTycoon_Go/internal/garden"
	"github.com/osse101/PlantTycoon_Go/internal/notify"
	"github.com/osse101/PlantTycoon_Go/internal/scheduler"
	"github.com/osse101/PlantTycoon_Go/internal/server"
	"github.com/osse101/PlantTycoon_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	NotifyPool         *worker.Pool
	Store              *garden.Store
	ResilientPublisher *event.ResilientPublisher
	Discord            *discordgo.Session
	DBPool             *pgxpool.Pool
	Redis              *redis.Client
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (let the current passes finish)
// 3. Notification pool (deliver queued messages)
// 4. Store (persist dirty gardeners)
// 5. Event publisher (flush pending retries)
// 6. External connections
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgShuttingDownScheduler)
		if err := c.Scheduler.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSchedulerShutdownFailed, "error", err)
		}
	}

	if c.NotifyPool != nil {
		slog.Info(LogMsgShuttingDownNotifier)
		if err := c.NotifyPool.Stop(ctx); err != nil {
			slog.Error(LogMsgNotifierShutdownFailed, "error", err)
		}
	}

	if c.Store != nil {
		slog.Info(LogMsgFlushingStore, "dirty", c.Store.Dirty())
		if err := c.Store.Flush(ctx); err != nil {
			slog.Error(LogMsgStoreFlushFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Discord != nil {
		notify.CloseDiscord(c.Discord)
	}
	if c.DBPool != nil {
		c.DBPool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
