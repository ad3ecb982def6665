package garden

import (
	"context"
	"fmt"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

// Ledger is the points account of each gardener. Every change goes through
// the store so it is serialized with all other mutations of that user.
//
// A nil error means the change is applied. A failed save does not undo the
// change (the record stays dirty until Flush), so it is logged by the store
// and not reported here.
type Ledger struct {
	store *Store
}

// NewLedger creates a ledger over store
func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store}
}

// Credit adds amount to the balance
func (l *Ledger) Credit(ctx context.Context, userID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return applied(l.store.Update(ctx, userID, func(g *domain.Gardener) error {
		g.Credit(amount)
		return nil
	}))
}

// Debit subtracts amount only if the balance covers it
func (l *Ledger) Debit(ctx context.Context, userID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return applied(l.store.Update(ctx, userID, func(g *domain.Gardener) error {
		return debit(g, amount)
	}))
}

// Reset floors a negative balance at zero
func (l *Ledger) Reset(ctx context.Context, userID string) error {
	return applied(l.store.Update(ctx, userID, func(g *domain.Gardener) error {
		g.ClampPoints()
		return nil
	}))
}

// Balance returns the current points
func (l *Ledger) Balance(ctx context.Context, userID string) int64 {
	return l.store.Get(ctx, userID).Points
}

// debit is the check-and-subtract used inside store updates
func debit(g *domain.Gardener, amount int64) error {
	if !g.Debit(amount) {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientPoints, g.Points, amount)
	}
	return nil
}

// applied drops an error that left the change in effect
func applied(err error) error {
	if committed(err) {
		return nil
	}
	return err
}
