package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/repository"
)

var _ repository.GardenerRepository = (*GardenerRepository)(nil)

// GardenerRepository stores each gardener as a JSONB document keyed by user id
type GardenerRepository struct {
	db *pgxpool.Pool
}

// NewGardenerRepository creates a new GardenerRepository
func NewGardenerRepository(db *pgxpool.Pool) *GardenerRepository {
	return &GardenerRepository{db: db}
}

// LoadGardeners reads every row. A row whose document cannot be decoded fails the whole load.
func (r *GardenerRepository) LoadGardeners(ctx context.Context) (map[string]*domain.Gardener, error) {
	rows, err := r.db.Query(ctx, queryLoadGardeners)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadGardeners, err)
	}
	defer rows.Close()

	out := make(map[string]*domain.Gardener)
	for rows.Next() {
		var (
			userID string
			data   []byte
		)
		if err := rows.Scan(&userID, &data); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadGardeners, err)
		}
		g, err := decodeGardener(userID, data)
		if err != nil {
			return nil, err
		}
		out[userID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadGardeners, err)
	}
	return out, nil
}

// SaveGardener upserts a single record
func (r *GardenerRepository) SaveGardener(ctx context.Context, g *domain.Gardener) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeGardener, err)
	}
	if _, err := r.db.Exec(ctx, queryUpsertGardener, g.UserID, data); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveGardener, g.UserID, err)
	}
	return nil
}

// SaveGardeners upserts all records in one transaction
func (r *GardenerRepository) SaveGardeners(ctx context.Context, gs []*domain.Gardener) error {
	if len(gs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, g := range gs {
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeGardener, err)
		}
		batch.Queue(queryUpsertGardener, g.UserID, data)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveGardener, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}
	return nil
}

func decodeGardener(userID string, data []byte) (*domain.Gardener, error) {
	g := domain.NewGardener(userID)
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToDecodeGardener, userID, err)
	}
	g.UserID = userID
	if g.Products == nil {
		g.Products = map[string]int{}
	}
	if g.Badges == nil {
		g.Badges = []string{}
	}
	return g, nil
}
