// Package jsonfile stores every gardener in one JSON document on disk.
// It serves single-instance deployments that run without Postgres.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/repository"
)

// Error Messages
const (
	ErrMsgFailedToReadFile   = "failed to read gardener file"
	ErrMsgFailedToDecodeFile = "failed to decode gardener file"
	ErrMsgFailedToWriteFile  = "failed to write gardener file"
)

const filePerm = 0o600

var _ repository.GardenerRepository = (*GardenerRepository)(nil)

// GardenerRepository keeps a cached copy of the file contents and rewrites
// the whole file on each save through a temp file plus rename.
type GardenerRepository struct {
	path string

	mu      sync.Mutex
	records map[string]json.RawMessage
	loaded  bool
}

// NewGardenerRepository creates a repository backed by path. The file is created on first save.
func NewGardenerRepository(path string) *GardenerRepository {
	return &GardenerRepository{path: path}
}

// LoadGardeners reads the file. A missing file is an empty collection.
func (r *GardenerRepository) LoadGardeners(ctx context.Context) (map[string]*domain.Gardener, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.readLocked(); err != nil {
		return nil, err
	}

	out := make(map[string]*domain.Gardener, len(r.records))
	for userID, raw := range r.records {
		g := domain.NewGardener(userID)
		if err := json.Unmarshal(raw, g); err != nil {
			return nil, fmt.Errorf("%s: user %s: %w", ErrMsgFailedToDecodeFile, userID, err)
		}
		g.UserID = userID
		if g.Products == nil {
			g.Products = map[string]int{}
		}
		if g.Badges == nil {
			g.Badges = []string{}
		}
		out[userID] = g
	}
	return out, nil
}

// SaveGardener replaces one record and rewrites the file
func (r *GardenerRepository) SaveGardener(ctx context.Context, g *domain.Gardener) error {
	return r.SaveGardeners(ctx, []*domain.Gardener{g})
}

// SaveGardeners replaces the given records and rewrites the file once.
// On failure the cached collection is left as it was.
func (r *GardenerRepository) SaveGardeners(ctx context.Context, gs []*domain.Gardener) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.readLocked(); err != nil {
		return err
	}

	next := make(map[string]json.RawMessage, len(r.records)+len(gs))
	for id, raw := range r.records {
		next[id] = raw
	}
	for _, g := range gs {
		raw, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
		}
		next[g.UserID] = raw
	}

	if err := r.writeLocked(next); err != nil {
		return err
	}
	r.records = next
	return nil
}

func (r *GardenerRepository) readLocked() error {
	if r.loaded {
		return nil
	}

	data, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.records = map[string]json.RawMessage{}
	case err != nil:
		return fmt.Errorf("%s: %w", ErrMsgFailedToReadFile, err)
	default:
		records := map[string]json.RawMessage{}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgFailedToDecodeFile, err)
			}
		}
		r.records = records
	}
	r.loaded = true
	return nil
}

func (r *GardenerRepository) writeLocked(records map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	return nil
}
