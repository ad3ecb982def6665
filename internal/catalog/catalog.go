package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/PlantTycoon_Go/internal/domain"
)

// Catalog holds the read-only plant, product and badge definitions.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	Plants        []domain.PlantTemplate
	Events        map[time.Month]domain.PlantTemplate
	Products      map[string]domain.Product
	Badges        map[string]domain.Badge
	Defaults      Defaults
	Notifications []string

	plantsByID map[string]domain.PlantTemplate
}

// Defaults holds the tunables shared by every plant
type Defaults struct {
	Timers       Timers       `yaml:"timers"`
	Degradation  Degradation  `yaml:"degradation"`
	Points       Points       `yaml:"points"`
	Notification Notification `yaml:"notification"`
	StarterWater int          `yaml:"starter_water" validate:"gte=0"`
}

// Timers are the scheduler periods in minutes
type Timers struct {
	Degradation  float64 `yaml:"degradation" validate:"gt=0"`
	Completion   float64 `yaml:"completion" validate:"gt=0"`
	Notification float64 `yaml:"notification" validate:"gt=0"`
}

// Degradation holds the base degradation added to every plant's own rate
type Degradation struct {
	Base float64 `yaml:"base_degradation" validate:"gte=0"`
}

// Points are the fixed rewards credited to the ledger
type Points struct {
	AddHealth int64 `yaml:"add_health" validate:"gte=0"`
	Growing   int64 `yaml:"growing" validate:"gte=0"`
}

// Notification configures the low-health alert
type Notification struct {
	MaxHealth float64 `yaml:"max_health"`
}

type notificationsSection struct {
	Messages []string `yaml:"messages"`
}

type catalogFile struct {
	Plants        []domain.PlantTemplate          `yaml:"plants"`
	Events        map[string]domain.PlantTemplate `yaml:"events"`
	Products      map[string]domain.Product       `yaml:"products"`
	Badges        map[string]domain.Badge         `yaml:"badges"`
	Defaults      *Defaults                       `yaml:"defaults"`
	Notifications *notificationsSection           `yaml:"notifications"`
}

var validate = validator.New()

// Load reads and validates the catalog file at path
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) catalog document. Every section is required.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	var missing []string
	if len(f.Plants) == 0 {
		missing = append(missing, SectionPlants)
	}
	if len(f.Products) == 0 {
		missing = append(missing, SectionProducts)
	}
	if f.Badges == nil {
		missing = append(missing, SectionBadges)
	}
	if f.Defaults == nil {
		missing = append(missing, SectionDefaults)
	}
	if f.Notifications == nil || len(f.Notifications.Messages) == 0 {
		missing = append(missing, SectionNotifications)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing sections: %s", domain.ErrInvalidCatalog, strings.Join(missing, ", "))
	}

	def := Definition{
		Plants:        f.Plants,
		Events:        make(map[time.Month]domain.PlantTemplate, len(f.Events)),
		Defaults:      *f.Defaults,
		Notifications: f.Notifications.Messages,
	}
	for id, p := range f.Products {
		if p.ID == "" {
			p.ID = id
		}
		def.Products = append(def.Products, p)
	}
	for id, b := range f.Badges {
		if b.ID == "" {
			b.ID = id
		}
		def.Badges = append(def.Badges, b)
	}
	for name, p := range f.Events {
		month, ok := parseMonth(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown event month %q", domain.ErrInvalidCatalog, name)
		}
		def.Events[month] = p
	}

	return New(def)
}

// Definition is the decoded content of a catalog before validation
type Definition struct {
	Plants        []domain.PlantTemplate
	Events        map[time.Month]domain.PlantTemplate
	Products      []domain.Product
	Badges        []domain.Badge
	Defaults      Defaults
	Notifications []string
}

// New validates def and builds the lookup tables
func New(def Definition) (*Catalog, error) {
	c := &Catalog{
		Plants:        def.Plants,
		Events:        def.Events,
		Products:      make(map[string]domain.Product, len(def.Products)),
		Badges:        make(map[string]domain.Badge, len(def.Badges)),
		Defaults:      def.Defaults,
		Notifications: def.Notifications,
		plantsByID:    make(map[string]domain.PlantTemplate),
	}
	if c.Events == nil {
		c.Events = map[time.Month]domain.PlantTemplate{}
	}
	for _, p := range def.Products {
		c.Products[strings.ToLower(p.ID)] = p
	}
	for _, b := range def.Badges {
		c.Badges[b.ID] = b
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var errs []error

	if len(c.Plants) == 0 {
		errs = append(errs, fmt.Errorf("at least one plant is required"))
	}
	if len(c.Notifications) == 0 {
		errs = append(errs, fmt.Errorf("at least one notification message is required"))
	}
	if err := validate.Struct(c.Defaults); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}

	templates := append([]domain.PlantTemplate{}, c.Plants...)
	for _, p := range c.Events {
		templates = append(templates, p)
	}
	for _, p := range templates {
		if err := validate.Struct(p); err != nil {
			errs = append(errs, fmt.Errorf("plant %q: %w", p.ID, err))
			continue
		}
		if _, dup := c.plantsByID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("plant %q: duplicate id", p.ID))
			continue
		}
		if _, ok := c.Badges[p.Badge]; !ok {
			errs = append(errs, fmt.Errorf("plant %q: badge %q not defined", p.ID, p.Badge))
		}
		c.plantsByID[p.ID] = p
	}

	for id, p := range c.Products {
		if err := validate.Struct(p); err != nil {
			errs = append(errs, fmt.Errorf("product %q: %w", id, err))
		}
	}
	for id, b := range c.Badges {
		if err := validate.Struct(b); err != nil {
			errs = append(errs, fmt.Errorf("badge %q: %w", id, err))
		}
	}

	if _, ok := c.Products[domain.ProductWater]; !ok {
		errs = append(errs, fmt.Errorf("product %q must be defined", domain.ProductWater))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

// Plant returns the template with the given id, including event plants
func (c *Catalog) Plant(id string) (domain.PlantTemplate, bool) {
	p, ok := c.plantsByID[id]
	return p, ok
}

// PlantByName looks a template up by display name, case-insensitively
func (c *Catalog) PlantByName(name string) (domain.PlantTemplate, bool) {
	for _, p := range c.Plants {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	for _, p := range c.Events {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.PlantTemplate{}, false
}

// Product returns the product with the given id (case-insensitive)
func (c *Catalog) Product(id string) (domain.Product, bool) {
	p, ok := c.Products[strings.ToLower(id)]
	return p, ok
}

// Badge returns the badge with the given id
func (c *Catalog) Badge(id string) (domain.Badge, bool) {
	b, ok := c.Badges[id]
	return b, ok
}

// EligiblePlants returns the base plants plus the event plant for month, if any
func (c *Catalog) EligiblePlants(month time.Month) []domain.PlantTemplate {
	plants := make([]domain.PlantTemplate, 0, len(c.Plants)+1)
	plants = append(plants, c.Plants...)
	if ev, ok := c.Events[month]; ok {
		plants = append(plants, ev)
	}
	return plants
}

// ProductList returns every product sorted by id
func (c *Catalog) ProductList() []domain.Product {
	products := make([]domain.Product, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products
}

// DecayInterval returns the degradation timer as a duration
func (t Timers) DecayInterval() time.Duration {
	return minutes(t.Degradation)
}

// CompletionInterval returns the completion timer as a duration
func (t Timers) CompletionInterval() time.Duration {
	return minutes(t.Completion)
}

// NotificationInterval returns the notification timer as a duration
func (t Timers) NotificationInterval() time.Duration {
	return minutes(t.Notification)
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func parseMonth(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}
