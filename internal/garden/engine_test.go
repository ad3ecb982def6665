package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

func TestEngine_Degradation(t *testing.T) {
	cat := newTestCatalog(t)
	e := NewEngine(cat)
	fern, ok := cat.Plant("fern")
	require.True(t, ok)

	tests := []struct {
		name      string
		gardener  *domain.Gardener
		wantRate  float64
		wantMods  float64
		wantScale float64
	}{
		{
			name:      "no modifiers",
			gardener:  domain.NewGardener("u"),
			wantRate:  0.25,
			wantScale: 100.0 / 60,
		},
		{
			name: "held products and badges contribute",
			gardener: &domain.Gardener{
				Products: map[string]int{"manure": 1, "pruner": 3},
				Badges:   []string{"fern"},
			},
			wantRate:  0.25 - 0.05 - 0.2 - 0.01,
			wantMods:  -0.26,
			wantScale: 100.0 / 60,
		},
		{
			name: "empty holdings and unknown ids are ignored",
			gardener: &domain.Gardener{
				Products: map[string]int{"manure": 0, "mystery": 4},
				Badges:   []string{"ghost"},
			},
			wantRate:  0.25,
			wantScale: 100.0 / 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Degradation(tt.gardener, fern)
			assert.InDelta(t, tt.wantScale, d.Scale, 1e-9)
			assert.InDelta(t, 0.10, d.Base, 1e-9)
			assert.InDelta(t, 0.05, d.Plant, 1e-9)
			assert.InDelta(t, tt.wantMods, d.Modifiers, 1e-9)
			assert.InDelta(t, tt.wantRate, d.Rate, 1e-9)
		})
	}
}

func TestEngine_ApplyProduct(t *testing.T) {
	e := NewEngine(newTestCatalog(t))
	water := domain.Product{ID: "water", Health: 10, Damage: 45}

	t.Run("healed below threshold", func(t *testing.T) {
		p := &domain.Plant{Health: 50}
		assert.Equal(t, OutcomeHealed, e.ApplyProduct(p, water, 110))
		assert.Equal(t, 60.0, p.Health)
	})

	t.Run("exactly at threshold is not an overdose", func(t *testing.T) {
		p := &domain.Plant{Health: 100}
		assert.Equal(t, OutcomeHealed, e.ApplyProduct(p, water, 110))
		assert.Equal(t, 110.0, p.Health)
	})

	t.Run("overdose nets gain minus damage", func(t *testing.T) {
		p := &domain.Plant{Health: 105}
		assert.Equal(t, OutcomeOverdose, e.ApplyProduct(p, water, 110))
		assert.Equal(t, 105.0+10-45, p.Health)
	})
}

func TestEngine_Resolve(t *testing.T) {
	cat := newTestCatalog(t)
	e := NewEngine(cat)
	fern, _ := cat.Plant("fern")

	tests := []struct {
		name    string
		elapsed time.Duration
		health  float64
		want    Resolution
	}{
		{"growing", 30 * time.Minute, 40, ResolutionGrowing},
		{"exactly grow time keeps growing", time.Hour, 40, ResolutionGrowing},
		{"bloomed", time.Hour + time.Second, 40, ResolutionBloomed},
		{"died before grow time", 30 * time.Minute, -0.1, ResolutionDied},
		{"zero health survives", 30 * time.Minute, 0, ResolutionGrowing},
		{"bloom wins over death", 2 * time.Hour, -5, ResolutionBloomed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.Plant{TemplateID: "fern", StartedAt: testStart, Health: tt.health}
			assert.Equal(t, tt.want, e.Resolve(p, fern, testStart.Add(tt.elapsed)))
		})
	}
}

func TestEngine_TimeToBloomAndDeath(t *testing.T) {
	cat := newTestCatalog(t)
	e := NewEngine(cat)
	fern, _ := cat.Plant("fern")

	p := &domain.Plant{StartedAt: testStart, Health: 1}
	assert.Equal(t, 40*time.Minute, e.TimeToBloom(p, fern, testStart.Add(20*time.Minute)))
	assert.Equal(t, time.Duration(0), e.TimeToBloom(p, fern, testStart.Add(3*time.Hour)))

	d, ok := e.TimeToDeath(1, 0.25)
	require.True(t, ok)
	assert.Equal(t, 5*time.Minute, d, "1/0.25 = 4 ticks to zero, one more to go negative")

	_, ok = e.TimeToDeath(10, 0)
	assert.False(t, ok)
	_, ok = e.TimeToDeath(10, -0.1)
	assert.False(t, ok)
}
