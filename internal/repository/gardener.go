package repository

import (
	"context"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

// GardenerRepository persists gardener records. Implementations only need
// to guarantee that the most recent successful save is what Load returns.
type GardenerRepository interface {
	// LoadGardeners returns every stored record keyed by user id
	LoadGardeners(ctx context.Context) (map[string]*domain.Gardener, error)

	// SaveGardener overwrites the whole record for g.UserID
	SaveGardener(ctx context.Context, g *domain.Gardener) error

	// SaveGardeners overwrites several records at once, all or nothing
	SaveGardeners(ctx context.Context, gs []*domain.Gardener) error
}
