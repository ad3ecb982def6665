// Package bank is the external currency that gardeners convert points into.
package bank

import (
	"context"
	"errors"
	"sync"
)

// ErrNoAccount is returned by Deposit when the user has no account
var ErrNoAccount = errors.New("bank account not found")

// Bank is the external credits ledger
type Bank interface {
	HasAccount(ctx context.Context, userID string) (bool, error)
	Deposit(ctx context.Context, userID string, amount int64) error
}

// MemoryBank keeps balances in process. Used when no Redis is configured and in tests.
type MemoryBank struct {
	mu       sync.Mutex
	balances map[string]int64
}

var _ Bank = (*MemoryBank)(nil)

// NewMemoryBank creates a bank holding the given accounts with zero balance
func NewMemoryBank(accounts ...string) *MemoryBank {
	b := &MemoryBank{balances: make(map[string]int64, len(accounts))}
	for _, id := range accounts {
		b.balances[id] = 0
	}
	return b
}

// Open creates an account if it does not exist yet
func (b *MemoryBank) Open(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.balances[userID]; !ok {
		b.balances[userID] = 0
	}
}

// HasAccount reports whether userID has an account
func (b *MemoryBank) HasAccount(_ context.Context, userID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.balances[userID]
	return ok, nil
}

// Deposit credits an existing account
func (b *MemoryBank) Deposit(_ context.Context, userID string, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.balances[userID]; !ok {
		return ErrNoAccount
	}
	b.balances[userID] += amount
	return nil
}

// Balance returns the credits held by userID
func (b *MemoryBank) Balance(userID string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[userID]
}
