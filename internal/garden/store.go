package garden

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/PlantTycoon_Go/internal/concurrency"
	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
	"github.com/osse101/PlantTycoon_Go/internal/metrics"
	"github.com/osse101/PlantTycoon_Go/internal/repository"
)

// Store owns every gardener record. The in-memory copy is authoritative and
// each committed update is written through to the repository.
type Store struct {
	repo  repository.GardenerRepository
	locks *concurrency.LockManager

	mu      sync.RWMutex
	records map[string]*domain.Gardener
	dirty   map[string]struct{}
}

// NewStore creates an empty store over repo
func NewStore(repo repository.GardenerRepository) *Store {
	return &Store{
		repo:    repo,
		locks:   concurrency.NewLockManager(),
		records: make(map[string]*domain.Gardener),
		dirty:   make(map[string]struct{}),
	}
}

// Load replaces the in-memory records with what the repository holds
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.repo.LoadGardeners(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	s.mu.Lock()
	s.records = make(map[string]*domain.Gardener, len(loaded))
	for id, g := range loaded {
		if g == nil {
			continue
		}
		g.UserID = id
		s.records[id] = g
	}
	s.dirty = make(map[string]struct{})
	n := len(s.records)
	s.mu.Unlock()

	metrics.ActiveGardeners.Set(float64(n))
	logger.FromContext(ctx).Info(LogMsgGardenersLoaded, "count", n)
	return nil
}

// Get returns a copy of the user's record, creating an empty one on first sight
func (s *Store) Get(ctx context.Context, userID string) domain.Gardener {
	var out domain.Gardener
	s.View(ctx, userID, func(g domain.Gardener) { out = g })
	return out
}

// View runs fn on a copy of the record while holding the user's lock
func (s *Store) View(ctx context.Context, userID string, fn func(g domain.Gardener)) {
	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	fn(*s.record(userID).Clone())
}

// Update is the only way to change a record. fn works on a clone; if it
// returns an error the clone is dropped and nothing changes. Otherwise the
// clone becomes the current record and is saved. A failed save returns an
// error wrapping domain.ErrPersistence but the new state is kept in memory and
// retried on the next save or Flush.
func (s *Store) Update(ctx context.Context, userID string, fn func(g *domain.Gardener) error) error {
	return s.locks.WithLock(userID, func() error {
		next := s.record(userID).Clone()
		if err := fn(next); err != nil {
			return err
		}
		next.UserID = userID

		s.mu.Lock()
		s.records[userID] = next
		s.dirty[userID] = struct{}{}
		s.mu.Unlock()

		if err := s.repo.SaveGardener(ctx, next); err != nil {
			metrics.PersistenceFailures.Inc()
			logger.FromContext(ctx).Error(LogMsgPersistFailed, logger.AttrKeyUserID, userID, "error", err)
			return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, userID, err)
		}

		s.mu.Lock()
		delete(s.dirty, userID)
		s.mu.Unlock()
		return nil
	})
}

// committed reports whether the change passed to Update is in effect. Only an
// error from fn rolls back; a failed save leaves the new state applied.
func committed(err error) bool {
	return err == nil || errors.Is(err, domain.ErrPersistence)
}

// UserIDs returns a sorted snapshot of known user ids
func (s *Store) UserIDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// lockAll takes the locks of ids, giving up when ctx ends first. The locks
// taken by an abandoned attempt are released as soon as it completes.
func (s *Store) lockAll(ctx context.Context, ids []string) (func(), error) {
	locked := make(chan func(), 1)
	go func() { locked <- s.locks.LockAll(ids) }()

	select {
	case unlock := <-locked:
		return unlock, nil
	case <-ctx.Done():
		go func() { (<-locked)() }()
		return nil, ctx.Err()
	}
}

// Dirty reports how many records have unsaved changes
func (s *Store) Dirty() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dirty)
}

// Flush saves every dirty record in one batch. User locks are taken in id
// order so no update interleaves with the snapshot. If ctx ends while an
// update still holds one of those locks, Flush returns without saving.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	ids := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	if len(ids) == 0 {
		return nil
	}

	unlock, err := s.lockAll(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: flush: %w", domain.ErrPersistence, err)
	}
	defer unlock()

	s.mu.RLock()
	batch := make([]*domain.Gardener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		if _, stillDirty := s.dirty[id]; stillDirty {
			batch = append(batch, s.records[id])
		}
	}
	s.mu.RUnlock()

	if err := s.repo.SaveGardeners(ctx, batch); err != nil {
		metrics.PersistenceFailures.Inc()
		return fmt.Errorf("%w: flush: %w", domain.ErrPersistence, err)
	}

	s.mu.Lock()
	for _, g := range batch {
		delete(s.dirty, g.UserID)
	}
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgGardenersFlushed, "count", len(batch))
	return nil
}

// record returns the current record, creating it if needed. Callers must hold the user's lock.
func (s *Store) record(userID string) *domain.Gardener {
	s.mu.RLock()
	g, ok := s.records[userID]
	s.mu.RUnlock()
	if ok {
		return g
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok = s.records[userID]; !ok {
		g = domain.NewGardener(userID)
		s.records[userID] = g
		metrics.ActiveGardeners.Set(float64(len(s.records)))
	}
	return g
}
