package garden

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PlantTycoon_Go/internal/catalog"
	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/event"
)

var testStart = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// newTestCatalog builds a catalog where fern decays at exactly 0.25 per tick:
// (100 / (3600/60)) * (0.10 + 0.05)
func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Definition{
		Plants: []domain.PlantTemplate{
			{ID: "fern", Name: "Fern", Article: "a", Rarity: "common", GrowTime: 3600, Degradation: 0.05, Threshold: 110, Health: 100, Badge: "fern", Reward: 100},
		},
		Events: map[time.Month]domain.PlantTemplate{
			time.December: {ID: "holly", Name: "Holly", Article: "a", Rarity: "event", GrowTime: 7200, Degradation: 0.1, Threshold: 115, Health: 100, Badge: "holly", Reward: 200},
		},
		Products: []domain.Product{
			{ID: "water", Category: domain.CategoryWater, Cost: 5, Health: 10, Damage: 45, Uses: 1},
			{ID: "manure", Category: domain.CategoryFertilizer, Cost: 20, Health: 20, Damage: 55, Uses: 1, Modifier: -0.05},
			{ID: "pruner", Category: domain.CategoryTool, Cost: 500, Health: 40, Damage: 90, Uses: 10, Modifier: -0.2},
		},
		Badges: []domain.Badge{
			{ID: "fern", Modifier: -0.01},
			{ID: "holly", Modifier: -0.02},
		},
		Defaults: catalog.Defaults{
			Timers:       catalog.Timers{Degradation: 1, Completion: 1, Notification: 5},
			Degradation:  catalog.Degradation{Base: 0.10},
			Points:       catalog.Points{AddHealth: 2, Growing: 5},
			Notification: catalog.Notification{MaxHealth: 50},
			StarterWater: 5,
		},
		Notifications: []string{"water me", "feed me"},
	})
	require.NoError(t, err)
	return c
}

// memRepo keeps saved gardeners in memory. Setting saveErr makes every save fail.
type memRepo struct {
	mu      sync.Mutex
	saved   map[string]*domain.Gardener
	saves   int
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{saved: map[string]*domain.Gardener{}}
}

func (r *memRepo) LoadGardeners(ctx context.Context) (map[string]*domain.Gardener, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Gardener, len(r.saved))
	for id, g := range r.saved {
		out[id] = g.Clone()
	}
	return out, nil
}

func (r *memRepo) SaveGardener(ctx context.Context, g *domain.Gardener) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[g.UserID] = g.Clone()
	r.saves++
	return nil
}

func (r *memRepo) SaveGardeners(ctx context.Context, gs []*domain.Gardener) error {
	for _, g := range gs {
		if err := r.SaveGardener(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRepo) failSaves(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveErr = err
}

func (r *memRepo) get(userID string) (*domain.Gardener, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.saved[userID]
	return g, ok
}

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadGardeners(ctx context.Context) (map[string]*domain.Gardener, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Gardener), args.Error(1)
}

func (m *MockRepository) SaveGardener(ctx context.Context, g *domain.Gardener) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockRepository) SaveGardeners(ctx context.Context, gs []*domain.Gardener) error {
	args := m.Called(ctx, gs)
	return args.Error(0)
}

// MockBank
type MockBank struct {
	mock.Mock
}

func (m *MockBank) HasAccount(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBank) Deposit(ctx context.Context, userID string, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// recordingBus captures published events
type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(eventType event.Type, handler event.Handler) {}

func (b *recordingBus) types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

// fakeClock is a settable time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func firstChoice(int) int { return 0 }

// seedGardener stores g directly, bypassing the service
func seedGardener(t *testing.T, store *Store, g domain.Gardener) {
	t.Helper()
	require.NoError(t, store.Update(context.Background(), g.UserID, func(cur *domain.Gardener) error {
		*cur = *g.Clone()
		return nil
	}))
}
