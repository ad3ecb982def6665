package domain

import (
	"slices"
	"time"
)

// Gardener is the per-user record: points, earned badges, unconsumed products
// and the plant currently growing, if any.
type Gardener struct {
	UserID   string         `json:"user_id"`
	Points   int64          `json:"points"`
	Badges   []string       `json:"badges"`
	Products map[string]int `json:"products"`
	Plant    *Plant         `json:"current,omitempty"`
}

// Plant is a growing plant instance. Elapsed and remaining time are derived
// from StartedAt and the template's grow time.
type Plant struct {
	TemplateID string    `json:"plant_id"`
	StartedAt  time.Time `json:"started_at"`
	Health     float64   `json:"health"`
}

// NewGardener returns an empty record for userID
func NewGardener(userID string) *Gardener {
	return &Gardener{
		UserID:   userID,
		Badges:   []string{},
		Products: map[string]int{},
	}
}

// Clone returns a deep copy so callers can mutate it without touching the original
func (g *Gardener) Clone() *Gardener {
	c := &Gardener{
		UserID:   g.UserID,
		Points:   g.Points,
		Badges:   slices.Clone(g.Badges),
		Products: make(map[string]int, len(g.Products)),
	}
	if c.Badges == nil {
		c.Badges = []string{}
	}
	for id, uses := range g.Products {
		c.Products[id] = uses
	}
	if g.Plant != nil {
		p := *g.Plant
		c.Plant = &p
	}
	return c
}

// IsGrowing reports whether the gardener has an active plant
func (g Gardener) IsGrowing() bool {
	return g.Plant != nil
}

// Credit adds points. Non-positive amounts are ignored.
func (g *Gardener) Credit(amount int64) {
	if amount <= 0 {
		return
	}
	g.Points += amount
}

// Debit subtracts amount if the balance covers it and reports whether it did.
func (g *Gardener) Debit(amount int64) bool {
	if amount < 0 || g.Points < amount {
		return false
	}
	g.Points -= amount
	return true
}

// ClampPoints floors a negative balance at zero
func (g *Gardener) ClampPoints() {
	if g.Points < 0 {
		g.Points = 0
	}
}

// HasBadge reports whether badgeID was already earned
func (g Gardener) HasBadge(badgeID string) bool {
	return slices.Contains(g.Badges, badgeID)
}

// AddBadge appends badgeID unless already present. Returns true when added.
func (g *Gardener) AddBadge(badgeID string) bool {
	if badgeID == "" || g.HasBadge(badgeID) {
		return false
	}
	g.Badges = append(g.Badges, badgeID)
	return true
}

// Uses returns the remaining uses of a product
func (g Gardener) Uses(productID string) int {
	return g.Products[productID]
}

// AddUses grants n uses of a product
func (g *Gardener) AddUses(productID string, n int) {
	if n <= 0 {
		return
	}
	if g.Products == nil {
		g.Products = map[string]int{}
	}
	g.Products[productID] += n
}

// UseProduct consumes one use, dropping the entry when it reaches zero.
// Returns false if the gardener holds no uses.
func (g *Gardener) UseProduct(productID string) bool {
	uses := g.Products[productID]
	if uses <= 0 {
		delete(g.Products, productID)
		return false
	}
	if uses == 1 {
		delete(g.Products, productID)
	} else {
		g.Products[productID] = uses - 1
	}
	return true
}

// Elapsed returns how long the plant has been growing at now
func (p *Plant) Elapsed(now time.Time) time.Duration {
	return now.Sub(p.StartedAt)
}
