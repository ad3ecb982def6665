package domain

import "time"

// ProductCategory groups products by the action that applies them
type ProductCategory string

const (
	CategoryWater      ProductCategory = "water"
	CategoryFertilizer ProductCategory = "fertilizer"
	CategoryTool       ProductCategory = "tool"
)

// Well-known product ids used by the water and prune actions
const (
	ProductWater  = "water"
	ProductPruner = "pruner"
)

// PlantTemplate describes a growable plant
type PlantTemplate struct {
	ID          string  `yaml:"id" json:"id" validate:"required"`
	Name        string  `yaml:"name" json:"name" validate:"required"`
	Article     string  `yaml:"article" json:"article"`
	Rarity      string  `yaml:"rarity" json:"rarity" validate:"required"`
	GrowTime    int64   `yaml:"time" json:"time" validate:"gt=0"` // seconds
	Degradation float64 `yaml:"degradation" json:"degradation" validate:"gte=0"`
	Threshold   float64 `yaml:"threshold" json:"threshold" validate:"gt=0"`
	Health      float64 `yaml:"health" json:"health" validate:"gt=0"`
	Badge       string  `yaml:"badge" json:"badge" validate:"required"`
	Reward      int64   `yaml:"reward" json:"reward" validate:"gte=0"`
	Image       string  `yaml:"image" json:"image"`
}

// GrowDuration returns the grow time as a time.Duration
func (t PlantTemplate) GrowDuration() time.Duration {
	return time.Duration(t.GrowTime) * time.Second
}

// Product is a consumable gardening supply
type Product struct {
	ID       string          `yaml:"id" json:"id" validate:"required"`
	Category ProductCategory `yaml:"category" json:"category" validate:"required,oneof=water fertilizer tool"`
	Cost     int64           `yaml:"cost" json:"cost" validate:"gte=0"`
	Health   float64         `yaml:"health" json:"health"`
	Damage   float64         `yaml:"damage" json:"damage" validate:"gte=0"`
	Uses     int             `yaml:"uses" json:"uses" validate:"gt=0"`
	Modifier float64         `yaml:"modifier" json:"modifier"`
}

// Badge is awarded for growing a plant to completion
type Badge struct {
	ID       string  `yaml:"id" json:"id" validate:"required"`
	Modifier float64 `yaml:"modifier" json:"modifier"`
}
