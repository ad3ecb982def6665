package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PlantTycoon_Go/internal/config"
	"github.com/osse101/PlantTycoon_Go/internal/notify"
	"github.com/osse101/PlantTycoon_Go/internal/worker"
)

// OpenNotifier builds the asynchronous notification sink. With a Discord
// token gardeners get direct messages, otherwise notifications are logged.
// The returned session is nil when Discord is disabled; the pool must be
// stopped by the caller.
func OpenNotifier(cfg *config.Config) (notify.Sink, *worker.Pool, *discordgo.Session, error) {
	var (
		sink    notify.Sink = notify.LogSink{}
		session *discordgo.Session
		backend = NotifierBackendLog
	)

	if cfg.DiscordToken != "" {
		s, err := notify.OpenDiscord(cfg.DiscordToken)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDiscord, err)
		}
		session = s
		sink = notify.NewDiscordSink(s, notify.DefaultChannelCacheSize, notify.DefaultChannelCacheTTL)
		backend = NotifierBackendDiscord
	}

	pool := worker.NewPool(cfg.NotifyWorkers, cfg.NotifyQueueSize)
	pool.Start()

	slog.Info(LogMsgNotifierOpened,
		"backend", backend,
		"workers", cfg.NotifyWorkers,
		"queue_size", cfg.NotifyQueueSize)

	return worker.NewAsyncSink(pool, sink), pool, session, nil
}
