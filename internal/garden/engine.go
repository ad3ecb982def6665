package garden

import (
	"math"
	"time"

	"github.com/osse101/PlantTycoon_Go/internal/catalog"
	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

// Engine holds the pure plant rules: degradation, product effects and
// completion. It never touches the store.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine creates a new engine over a catalog
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Degradation is the health a plant loses on each decay tick, split into its parts
type Degradation struct {
	// Scale is 100 / grow time in minutes
	Scale float64 `json:"scale"`
	// Base is the catalog-wide base degradation before scaling
	Base float64 `json:"base"`
	// Plant is the template's own degradation before scaling
	Plant float64 `json:"plant"`
	// Modifiers sums held product and earned badge modifiers
	Modifiers float64 `json:"modifiers"`
	// Rate is the total health lost per tick
	Rate float64 `json:"rate"`
}

// Degradation computes the per-tick loss for g growing tmpl. Products the
// gardener holds at least one use of and every earned badge contribute their
// modifier; ids missing from the catalog contribute nothing.
func (e *Engine) Degradation(g *domain.Gardener, tmpl domain.PlantTemplate) Degradation {
	d := Degradation{
		Scale: 100 / (float64(tmpl.GrowTime) / 60),
		Base:  e.cat.Defaults.Degradation.Base,
		Plant: tmpl.Degradation,
	}

	for id, uses := range g.Products {
		if uses < 1 {
			continue
		}
		if p, ok := e.cat.Product(id); ok {
			d.Modifiers += p.Modifier
		}
	}
	for _, id := range g.Badges {
		if b, ok := e.cat.Badge(id); ok {
			d.Modifiers += b.Modifier
		}
	}

	d.Rate = d.Scale*(d.Base+d.Plant) + d.Modifiers
	return d
}

// ApplyProduct adds the product's health to the plant and subtracts its
// damage when the result exceeds the plant's threshold.
func (e *Engine) ApplyProduct(p *domain.Plant, product domain.Product, threshold float64) Outcome {
	p.Health += product.Health
	if p.Health > threshold {
		p.Health -= product.Damage
		return OutcomeOverdose
	}
	return OutcomeHealed
}

// Resolve decides whether a plant bloomed, died or keeps growing at now.
// Blooming wins over dying when both hold.
func (e *Engine) Resolve(p *domain.Plant, tmpl domain.PlantTemplate, now time.Time) Resolution {
	if p.Elapsed(now) > tmpl.GrowDuration() {
		return ResolutionBloomed
	}
	if p.Health < 0 {
		return ResolutionDied
	}
	return ResolutionGrowing
}

// TimeToBloom returns how long until the plant blooms, never negative
func (e *Engine) TimeToBloom(p *domain.Plant, tmpl domain.PlantTemplate, now time.Time) time.Duration {
	return max(tmpl.GrowDuration()-p.Elapsed(now), 0)
}

// TimeToDeath estimates how long until health drops below zero at the
// current rate. ok is false when the rate is not positive.
func (e *Engine) TimeToDeath(health, rate float64) (d time.Duration, ok bool) {
	if rate <= 0 {
		return 0, false
	}
	if health < 0 {
		return 0, true
	}
	ticks := math.Floor(health/rate) + 1
	return time.Duration(ticks * float64(e.cat.Defaults.Timers.DecayInterval())), true
}
