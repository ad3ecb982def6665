package garden

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

func TestStore_GetCreatesEmptyRecord(t *testing.T) {
	repo := newMemRepo()
	store := NewStore(repo)

	g := store.Get(context.Background(), "alice")
	assert.Equal(t, "alice", g.UserID)
	assert.Zero(t, g.Points)
	assert.Empty(t, g.Badges)
	assert.Empty(t, g.Products)
	assert.Nil(t, g.Plant)

	_, saved := repo.get("alice")
	assert.False(t, saved, "lazy creation is not persisted until an update")
	assert.Equal(t, []string{"alice"}, store.UserIDs())
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(newMemRepo())
	ctx := context.Background()
	require.NoError(t, store.Update(ctx, "u", func(g *domain.Gardener) error {
		g.AddUses("water", 2)
		return nil
	}))

	g := store.Get(ctx, "u")
	g.Products["water"] = 99
	assert.Equal(t, 2, store.Get(ctx, "u").Uses("water"))
}

func TestStore_UpdateErrorDiscardsChanges(t *testing.T) {
	repo := newMemRepo()
	store := NewStore(repo)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Update(ctx, "u", func(g *domain.Gardener) error {
		g.Points = 1000
		g.AddUses("water", 3)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	g := store.Get(ctx, "u")
	assert.Zero(t, g.Points)
	assert.Empty(t, g.Products)
	assert.Zero(t, repo.saves)
}

func TestStore_UpdatePersists(t *testing.T) {
	repo := newMemRepo()
	store := NewStore(repo)

	require.NoError(t, store.Update(context.Background(), "u", func(g *domain.Gardener) error {
		g.Credit(7)
		return nil
	}))

	saved, ok := repo.get("u")
	require.True(t, ok)
	assert.Equal(t, int64(7), saved.Points)
	assert.Equal(t, "u", saved.UserID)
	assert.Zero(t, store.Dirty())
}

func TestStore_PersistenceFailureKeepsStateDirty(t *testing.T) {
	repo := new(MockRepository)
	store := NewStore(repo)
	ctx := context.Background()

	repo.On("SaveGardener", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	err := store.Update(ctx, "u", func(g *domain.Gardener) error {
		g.Credit(10)
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, int64(10), store.Get(ctx, "u").Points, "memory stays authoritative")
	assert.Equal(t, 1, store.Dirty())

	repo.On("SaveGardeners", mock.Anything, mock.MatchedBy(func(gs []*domain.Gardener) bool {
		return len(gs) == 1 && gs[0].UserID == "u" && gs[0].Points == 10
	})).Return(nil).Once()
	require.NoError(t, store.Flush(ctx))
	assert.Zero(t, store.Dirty())
	repo.AssertExpectations(t)
}

func TestStore_FlushFailure(t *testing.T) {
	repo := new(MockRepository)
	store := NewStore(repo)
	ctx := context.Background()

	repo.On("SaveGardener", mock.Anything, mock.Anything).Return(errors.New("down"))
	_ = store.Update(ctx, "a", func(g *domain.Gardener) error { g.Credit(1); return nil })
	_ = store.Update(ctx, "b", func(g *domain.Gardener) error { g.Credit(1); return nil })
	require.Equal(t, 2, store.Dirty())

	repo.On("SaveGardeners", mock.Anything, mock.Anything).Return(errors.New("still down")).Once()
	err := store.Flush(ctx)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 2, store.Dirty())
}

func TestStore_FlushGivesUpOnBusyLock(t *testing.T) {
	repo := newMemRepo()
	store := NewStore(repo)
	ctx := context.Background()

	repo.failSaves(errors.New("disk full"))
	_ = store.Update(ctx, "u", func(g *domain.Gardener) error { g.Credit(3); return nil })
	require.Equal(t, 1, store.Dirty())

	started, release := make(chan struct{}), make(chan struct{})
	stuck := make(chan error, 1)
	go func() {
		stuck <- store.Update(ctx, "u", func(g *domain.Gardener) error {
			close(started)
			<-release
			return errors.New("abandoned")
		})
	}()
	<-started

	flushCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := store.Flush(flushCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 1, store.Dirty())

	close(release)
	require.Error(t, <-stuck)
	repo.failSaves(nil)
	require.NoError(t, store.Flush(ctx))
	assert.Zero(t, store.Dirty())

	saved, ok := repo.get("u")
	require.True(t, ok)
	assert.Equal(t, int64(3), saved.Points)
}

func TestStore_FlushNothingDirty(t *testing.T) {
	repo := new(MockRepository)
	store := NewStore(repo)
	require.NoError(t, store.Flush(context.Background()))
	repo.AssertNotCalled(t, "SaveGardeners", mock.Anything, mock.Anything)
}

func TestStore_Load(t *testing.T) {
	repo := newMemRepo()
	repo.saved["bob"] = &domain.Gardener{Points: 42, Badges: []string{"fern"}, Products: map[string]int{}}
	store := NewStore(repo)

	require.NoError(t, store.Load(context.Background()))
	g := store.Get(context.Background(), "bob")
	assert.Equal(t, "bob", g.UserID, "user id is taken from the map key")
	assert.Equal(t, int64(42), g.Points)
	assert.Equal(t, []string{"bob"}, store.UserIDs())
}

func TestStore_LoadFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LoadGardeners", mock.Anything).Return(nil, errors.New("no db"))
	err := NewStore(repo).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestStore_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := NewStore(newMemRepo())
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, "shared", func(g *domain.Gardener) error {
				g.Credit(1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers), store.Get(ctx, "shared").Points)
}
