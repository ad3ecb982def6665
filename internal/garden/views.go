package garden

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

var titleCaser = cases.Title(language.English)

// Title formats an id such as "sunflower" for display
func Title(id string) string {
	return titleCaser.String(id)
}

// ApplyResult is returned by every product application
type ApplyResult struct {
	Outcome       Outcome        `json:"outcome"`
	Product       domain.Product `json:"product"`
	Health        float64        `json:"health"`
	PointsAwarded int64          `json:"points_awarded"`
	Message       string         `json:"message"`
}

// SeedResult describes a freshly planted seed
type SeedResult struct {
	Plant        domain.PlantTemplate `json:"plant"`
	Health       float64              `json:"health"`
	StarterWater int                  `json:"starter_water"`
	Message      string               `json:"message"`
}

// BuyResult describes a completed purchase
type BuyResult struct {
	Product    domain.Product `json:"product"`
	Amount     int            `json:"amount"`
	Cost       int64          `json:"cost"`
	UsesGained int            `json:"uses_gained"`
	Uses       int            `json:"uses"`
	Points     int64          `json:"points"`
	Message    string         `json:"message"`
}

// ConvertResult describes a completed currency conversion
type ConvertResult struct {
	Amount  int64  `json:"amount"`
	Points  int64  `json:"points"`
	Message string `json:"message"`
}

// PlantView is the read model of a growing plant
type PlantView struct {
	PlantID     string      `json:"plant_id"`
	Name        string      `json:"name"`
	Article     string      `json:"article"`
	Rarity      string      `json:"rarity"`
	Image       string      `json:"image,omitempty"`
	Health      float64     `json:"health"`
	Threshold   float64     `json:"threshold"`
	StartedAt   time.Time   `json:"started_at"`
	Degradation Degradation `json:"degradation"`
	// DecayIntervalMinutes is how often Degradation.Rate is subtracted
	DecayIntervalMinutes float64 `json:"decay_interval_minutes"`
	MinutesToBloom       float64 `json:"minutes_to_bloom"`
	// MinutesToDeath is nil when the plant is not losing health
	MinutesToDeath *float64 `json:"minutes_to_death,omitempty"`
}

// BadgeView is an earned badge with its degradation modifier
type BadgeView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Modifier float64 `json:"modifier"`
}

// ProductHolding is a product in a gardener's shed
type ProductHolding struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Uses int    `json:"uses"`
	// Purchases is Uses expressed in purchase units
	Purchases float64 `json:"purchases"`
	Modifier  float64 `json:"modifier"`
}

// Profile is everything a gardener can see about themselves
type Profile struct {
	UserID   string           `json:"user_id"`
	Points   int64            `json:"points"`
	Badges   []BadgeView      `json:"badges"`
	Products []ProductHolding `json:"products"`
	Plant    *PlantView       `json:"plant,omitempty"`
}
