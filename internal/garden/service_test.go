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

	"github.com/osse101/PlantTycoon_Go/internal/bank"
	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/event"
)

type serviceFixture struct {
	svc   Service
	store *Store
	repo  *memRepo
	bank  *bank.MemoryBank
	bus   *recordingBus
	clock *fakeClock
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		repo:  newMemRepo(),
		bank:  bank.NewMemoryBank(),
		bus:   &recordingBus{},
		clock: newFakeClock(testStart),
	}
	f.store = NewStore(f.repo)
	f.svc = NewService(f.store, newTestCatalog(t), f.bank, f.bus, WithClock(f.clock.Now), WithRandom(firstChoice))
	return f
}

func growing(userID string, health float64, points int64, products map[string]int) domain.Gardener {
	return domain.Gardener{
		UserID:   userID,
		Points:   points,
		Products: products,
		Plant:    &domain.Plant{TemplateID: "fern", StartedAt: testStart, Health: health},
	}
}

func TestService_Seed(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	res, err := f.svc.Seed(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "fern", res.Plant.ID)
	assert.Equal(t, 100.0, res.Health)
	assert.Equal(t, 5, res.StarterWater)
	assert.Contains(t, res.Message, "a Fern (common)")

	g := f.store.Get(ctx, "u")
	require.NotNil(t, g.Plant)
	assert.Equal(t, testStart, g.Plant.StartedAt)
	assert.Equal(t, 5, g.Uses("water"))
	assert.Equal(t, []event.Type{event.PlantSeeded}, f.bus.types())

	_, err = f.svc.Seed(ctx, "u")
	assert.ErrorIs(t, err, domain.ErrAlreadyGrowing)
	assert.Equal(t, 5, f.store.Get(ctx, "u").Uses("water"), "second seed grants nothing")
}

func TestService_SeedPicksEventPlantInItsMonth(t *testing.T) {
	repo := newMemRepo()
	store := NewStore(repo)
	december := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)
	last := func(n int) int { return n - 1 }
	svc := NewService(store, newTestCatalog(t), bank.NewMemoryBank(), nil,
		WithClock(func() time.Time { return december }), WithRandom(last))

	res, err := svc.Seed(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, "holly", res.Plant.ID)
	assert.Len(t, svc.Plants(), 2)
}

func TestService_OnePlantAcrossInterleavings(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Seed(ctx, "u"); err == nil {
				mu.Lock()
				seeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrAlreadyGrowing)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, seeded)
	assert.Equal(t, 5, f.store.Get(ctx, "u").Uses("water"))
}

func TestService_Abandon(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Abandon(ctx, "u"), domain.ErrNoActivePlant)

	seedGardener(t, f.store, growing("u", 80, -3, nil))
	require.NoError(t, f.svc.Abandon(ctx, "u"))

	g := f.store.Get(ctx, "u")
	assert.Nil(t, g.Plant)
	assert.Zero(t, g.Points, "abandon applies the ledger floor")
	assert.Contains(t, f.bus.types(), event.PlantAbandoned)
}

func TestService_Apply(t *testing.T) {
	tests := []struct {
		name       string
		gardener   func() domain.Gardener
		product    string
		category   domain.ProductCategory
		wantErr    error
		wantOut    Outcome
		wantHealth float64
	}{
		{
			name:     "no plant",
			gardener: func() domain.Gardener { return domain.Gardener{UserID: "u", Products: map[string]int{"water": 1}} },
			product:  "water", category: domain.CategoryWater,
			wantErr: domain.ErrNoActivePlant,
		},
		{
			name:     "unknown product",
			gardener: func() domain.Gardener { return growing("u", 50, 0, nil) },
			product:  "moonjuice", category: domain.CategoryFertilizer,
			wantErr: domain.ErrUnknownProduct,
		},
		{
			name:     "category mismatch",
			gardener: func() domain.Gardener { return growing("u", 50, 0, map[string]int{"water": 1}) },
			product:  "water", category: domain.CategoryFertilizer,
			wantErr: domain.ErrUnknownProduct,
		},
		{
			name:     "out of stock",
			gardener: func() domain.Gardener { return growing("u", 50, 0, nil) },
			product:  "manure", category: domain.CategoryFertilizer,
			wantErr: domain.ErrOutOfStock,
		},
		{
			name:     "healed",
			gardener: func() domain.Gardener { return growing("u", 50, 0, map[string]int{"manure": 2}) },
			product:  "manure", category: domain.CategoryFertilizer,
			wantOut: OutcomeHealed, wantHealth: 70,
		},
		{
			name:     "overdose nets gain minus damage",
			gardener: func() domain.Gardener { return growing("u", 101, 0, map[string]int{"water": 1}) },
			product:  "WATER", category: domain.CategoryWater,
			wantOut: OutcomeOverdose, wantHealth: 101 + 10 - 45,
		},
		{
			name:     "reaching the threshold exactly is healed",
			gardener: func() domain.Gardener { return growing("u", 100, 0, map[string]int{"water": 1}) },
			product:  "water", category: domain.CategoryWater,
			wantOut: OutcomeHealed, wantHealth: 110,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			ctx := context.Background()
			seedGardener(t, f.store, tt.gardener())
			before := f.store.Get(ctx, "u")

			res, err := f.svc.Apply(ctx, "u", tt.product, tt.category)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, f.store.Get(ctx, "u"), "failed apply changes nothing")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, res.Outcome)
			assert.InDelta(t, tt.wantHealth, res.Health, 1e-9)
			assert.Equal(t, int64(2), res.PointsAwarded)

			after := f.store.Get(ctx, "u")
			assert.Equal(t, before.Points+2, after.Points)
			assert.Equal(t, before.Uses(res.Product.ID)-1, after.Uses(res.Product.ID))
		})
	}
}

func TestService_OverdoseIsCheckedOnEveryApplication(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	seedGardener(t, f.store, growing("u", 150, 0, map[string]int{"water": 3}))

	// fern threshold 110, water +10 / -45
	steps := []struct {
		outcome Outcome
		health  float64
	}{
		{OutcomeOverdose, 115},
		{OutcomeOverdose, 80},
		{OutcomeHealed, 90},
	}
	for i, step := range steps {
		res, err := f.svc.Water(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, step.outcome, res.Outcome, "application %d", i+1)
		assert.InDelta(t, step.health, res.Health, 1e-9, "application %d", i+1)
	}
	assert.InDelta(t, 90, f.store.Get(ctx, "u").Plant.Health, 1e-9)
}

func TestService_ApplyRemovesEmptyProduct(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	seedGardener(t, f.store, growing("u", 50, 0, map[string]int{"water": 1}))

	_, err := f.svc.Water(ctx, "u")
	require.NoError(t, err)
	_, held := f.store.Get(ctx, "u").Products["water"]
	assert.False(t, held)

	_, err = f.svc.Water(ctx, "u")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestService_Wrappers(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	seedGardener(t, f.store, growing("u", 10, 0, map[string]int{"water": 1, "manure": 1, "pruner": 10}))

	res, err := f.svc.Water(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "water", res.Product.ID)

	res, err = f.svc.Fertilize(ctx, "u", "manure")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFertilizer, res.Product.Category)

	_, err = f.svc.Fertilize(ctx, "u", "pruner")
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	res, err = f.svc.Prune(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "pruner", res.Product.ID)
	assert.Equal(t, 9, f.store.Get(ctx, "u").Uses("pruner"))
}

func TestService_Buy(t *testing.T) {
	ctx := context.Background()

	t.Run("zero points changes nothing", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Buy(ctx, "u", "water", 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
		g := f.store.Get(ctx, "u")
		assert.Zero(t, g.Points)
		assert.Empty(t, g.Products)
	})

	t.Run("grants amount times uses", func(t *testing.T) {
		f := newServiceFixture(t)
		seedGardener(t, f.store, domain.Gardener{UserID: "u", Points: 1200})

		res, err := f.svc.Buy(ctx, "u", "Pruner", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), res.Cost)
		assert.Equal(t, 20, res.UsesGained)
		assert.Equal(t, 20, res.Uses)
		assert.Equal(t, int64(200), res.Points)
		assert.Contains(t, f.bus.types(), event.ProductBought)
	})

	t.Run("invalid amount", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Buy(ctx, "u", "water", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		_, err = f.svc.Buy(ctx, "u", "water", -2)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Buy(ctx, "u", "moonjuice", 1)
		assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	})

	t.Run("cost overflow", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Buy(ctx, "u", "pruner", 1<<62)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestService_Convert(t *testing.T) {
	ctx := context.Background()

	t.Run("deposits and debits", func(t *testing.T) {
		f := newServiceFixture(t)
		f.bank.Open("u")
		seedGardener(t, f.store, domain.Gardener{UserID: "u", Points: 50})

		res, err := f.svc.Convert(ctx, "u", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(20), res.Points)
		assert.Equal(t, int64(30), f.bank.Balance("u"))
		assert.Contains(t, f.bus.types(), event.PointsConverted)
	})

	t.Run("no external account", func(t *testing.T) {
		f := newServiceFixture(t)
		seedGardener(t, f.store, domain.Gardener{UserID: "u", Points: 50})
		_, err := f.svc.Convert(ctx, "u", 10)
		assert.ErrorIs(t, err, domain.ErrNoExternalAccount)
		assert.Equal(t, int64(50), f.store.Get(ctx, "u").Points)
	})

	t.Run("insufficient points never deposits", func(t *testing.T) {
		f := newServiceFixture(t)
		f.bank.Open("u")
		_, err := f.svc.Convert(ctx, "u", 10)
		assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
		assert.Zero(t, f.bank.Balance("u"))
	})

	t.Run("invalid amount", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.Convert(ctx, "u", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("failed deposit is refunded", func(t *testing.T) {
		store := NewStore(newMemRepo())
		mb := new(MockBank)
		mb.On("HasAccount", mock.Anything, "u").Return(true, nil)
		mb.On("Deposit", mock.Anything, "u", int64(40)).Return(errors.New("bank offline"))
		svc := NewService(store, newTestCatalog(t), mb, nil)
		seedGardener(t, store, domain.Gardener{UserID: "u", Points: 40})

		_, err := svc.Convert(ctx, "u", 40)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bank offline")
		assert.Equal(t, int64(40), store.Get(ctx, "u").Points)
		mb.AssertExpectations(t)
	})

	t.Run("save failure after debit still deposits", func(t *testing.T) {
		f := newServiceFixture(t)
		f.bank.Open("u")
		seedGardener(t, f.store, domain.Gardener{UserID: "u", Points: 40})
		f.repo.failSaves(errors.New("disk full"))

		res, err := f.svc.Convert(ctx, "u", 40)
		require.NoError(t, err)
		assert.Zero(t, res.Points)
		assert.Zero(t, f.store.Get(ctx, "u").Points)
		assert.Equal(t, int64(40), f.bank.Balance("u"), "points left the ledger so they reach the bank")
		assert.Equal(t, 1, f.store.Dirty())

		_, err = f.svc.Buy(ctx, "u", "water", 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	})

	t.Run("failed deposit refund survives save failure", func(t *testing.T) {
		repo := newMemRepo()
		store := NewStore(repo)
		mb := new(MockBank)
		mb.On("HasAccount", mock.Anything, "u").Return(true, nil)
		mb.On("Deposit", mock.Anything, "u", int64(25)).Return(errors.New("bank offline"))
		svc := NewService(store, newTestCatalog(t), mb, nil)
		seedGardener(t, store, domain.Gardener{UserID: "u", Points: 25})
		repo.failSaves(errors.New("disk full"))

		_, err := svc.Convert(ctx, "u", 25)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bank offline")
		assert.NotContains(t, err.Error(), "disk full")
		assert.Equal(t, int64(25), store.Get(ctx, "u").Points)
	})

	t.Run("bank lookup failure", func(t *testing.T) {
		store := NewStore(newMemRepo())
		mb := new(MockBank)
		mb.On("HasAccount", mock.Anything, "u").Return(false, errors.New("timeout"))
		svc := NewService(store, newTestCatalog(t), mb, nil)

		_, err := svc.Convert(ctx, "u", 1)
		require.Error(t, err)
		mb.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_ProfileAndState(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.State(ctx, "u")
	assert.ErrorIs(t, err, domain.ErrNoActivePlant)

	g := growing("u", 1.01, 12, map[string]int{"pruner": 5})
	g.Badges = []string{"fern"}
	seedGardener(t, f.store, g)
	f.clock.Advance(20 * time.Minute)

	view, err := f.svc.State(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "Fern", view.Name)
	assert.InDelta(t, 40, view.MinutesToBloom, 1e-9)
	assert.InDelta(t, 0.25-0.2-0.01, view.Degradation.Rate, 1e-9)
	require.NotNil(t, view.MinutesToDeath)
	assert.InDelta(t, 26, *view.MinutesToDeath, 1e-9, "floor(1.01/0.04)+1 ticks of one minute")

	profile, err := f.svc.Profile(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(12), profile.Points)
	require.Len(t, profile.Badges, 1)
	assert.Equal(t, BadgeView{ID: "fern", Name: "Fern", Modifier: -0.01}, profile.Badges[0])
	require.Len(t, profile.Products, 1)
	assert.Equal(t, "Pruner", profile.Products[0].Name)
	assert.InDelta(t, 0.5, profile.Products[0].Purchases, 1e-9)
	require.NotNil(t, profile.Plant)
}

func TestService_ProfileWithoutPlantHasNoDeathEstimate(t *testing.T) {
	f := newServiceFixture(t)
	profile, err := f.svc.Profile(context.Background(), "new")
	require.NoError(t, err)
	assert.Nil(t, profile.Plant)
	assert.Empty(t, profile.Badges)
	assert.Empty(t, profile.Products)
}

func TestService_CatalogListings(t *testing.T) {
	f := newServiceFixture(t)

	assert.Len(t, f.svc.Plants(), 1, "no event plant in June")

	p, err := f.svc.Plant("  fErN ")
	require.NoError(t, err)
	assert.Equal(t, "fern", p.ID)

	_, err = f.svc.Plant("cactus")
	assert.ErrorIs(t, err, domain.ErrUnknownPlant)

	products := f.svc.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "manure", products[0].ID)
}
