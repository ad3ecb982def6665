package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/PlantTycoon_Go/internal/bank"
	"github.com/osse101/PlantTycoon_Go/internal/config"
)

// OpenBank connects the Redis bank when REDIS_ADDR is set, otherwise it
// returns an in-memory bank with no accounts. The client is nil for the
// in-memory bank; the caller closes it otherwise.
func OpenBank(ctx context.Context, cfg *config.Config) (bank.Bank, *redis.Client, error) {
	if cfg.RedisAddr == "" {
		slog.Info(LogMsgBankOpened, "backend", BankBackendMemory)
		return bank.NewMemoryBank(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	slog.Info(LogMsgBankOpened, "backend", BankBackendRedis, "addr", cfg.RedisAddr)
	return bank.NewRedisBank(client, ""), client, nil
}

// RedisPinger adapts a Redis client to the readiness check
type RedisPinger struct {
	Client *redis.Client
}

// Ping implements handler.Pinger
func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
