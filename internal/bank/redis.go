package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis layout: one hash per account, credits kept in a single field
const (
	DefaultKeyPrefix = "bank:account:"
	balanceField     = "balance"
)

// Deposit script results
const (
	depositNoAccount = 0
	depositApplied   = 1
)

// depositScript increments the balance only if the account hash exists,
// so a deposit can never create an account.
// KEYS[1]: account hash, ARGV[1]: balance field, ARGV[2]: amount
var depositScript = redis.NewScript(`
if redis.call('exists', KEYS[1]) == 0 then
    return 0
end
redis.call('hincrby', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

// RedisBank stores accounts in Redis hashes shared with the economy service
type RedisBank struct {
	client redis.UniversalClient
	prefix string
}

var _ Bank = (*RedisBank)(nil)

// NewRedisBank creates a bank over client. An empty prefix uses DefaultKeyPrefix.
func NewRedisBank(client redis.UniversalClient, prefix string) *RedisBank {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisBank{client: client, prefix: prefix}
}

func (b *RedisBank) key(userID string) string {
	return b.prefix + userID
}

// HasAccount reports whether the account hash exists
func (b *RedisBank) HasAccount(ctx context.Context, userID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check bank account: %w", err)
	}
	return n > 0, nil
}

// Deposit atomically adds amount to an existing account
func (b *RedisBank) Deposit(ctx context.Context, userID string, amount int64) error {
	res, err := depositScript.Run(ctx, b.client, []string{b.key(userID)}, balanceField, amount).Int()
	if err != nil {
		return fmt.Errorf("failed to deposit credits: %w", err)
	}
	if res != depositApplied {
		return ErrNoAccount
	}
	return nil
}

// Open creates the account with a zero balance if missing
func (b *RedisBank) Open(ctx context.Context, userID string) error {
	if err := b.client.HSetNX(ctx, b.key(userID), balanceField, 0).Err(); err != nil {
		return fmt.Errorf("failed to open bank account: %w", err)
	}
	return nil
}

// Balance returns the account's credits
func (b *RedisBank) Balance(ctx context.Context, userID string) (int64, error) {
	v, err := b.client.HGet(ctx, b.key(userID), balanceField).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoAccount
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read bank balance: %w", err)
	}
	return v, nil
}
