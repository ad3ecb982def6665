package garden

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/osse101/PlantTycoon_Go/internal/bank"
	"github.com/osse101/PlantTycoon_Go/internal/catalog"
	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/event"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// Service defines the gardening actions a user can take
type Service interface {
	Seed(ctx context.Context, userID string) (*SeedResult, error)
	Abandon(ctx context.Context, userID string) error
	Apply(ctx context.Context, userID, productID string, category domain.ProductCategory) (*ApplyResult, error)
	Water(ctx context.Context, userID string) (*ApplyResult, error)
	Fertilize(ctx context.Context, userID, productID string) (*ApplyResult, error)
	Prune(ctx context.Context, userID string) (*ApplyResult, error)
	Buy(ctx context.Context, userID, productID string, amount int) (*BuyResult, error)
	Convert(ctx context.Context, userID string, amount int64) (*ConvertResult, error)
	Profile(ctx context.Context, userID string) (*Profile, error)
	State(ctx context.Context, userID string) (*PlantView, error)
	Plants() []domain.PlantTemplate
	Plant(name string) (*domain.PlantTemplate, error)
	Products() []domain.Product
}

type service struct {
	store  *Store
	cat    *catalog.Catalog
	engine *Engine
	bank   bank.Bank
	bus    event.Bus
	opts   options
}

// NewService creates a new gardening service. bus may be nil.
func NewService(store *Store, cat *catalog.Catalog, bk bank.Bank, bus event.Bus, opts ...Option) Service {
	return &service{
		store:  store,
		cat:    cat,
		engine: NewEngine(cat),
		bank:   bk,
		bus:    bus,
		opts:   defaultOptions(opts),
	}
}

// Seed plants a random eligible seed and hands out the starter water
func (s *service) Seed(ctx context.Context, userID string) (*SeedResult, error) {
	now := s.opts.now()
	eligible := s.cat.EligiblePlants(now.Month())
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: no plants available", domain.ErrUnknownPlant)
	}

	starter := s.cat.Defaults.StarterWater
	if starter == 0 {
		starter = DefaultStarterWater
	}

	var result *SeedResult
	err := s.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if g.IsGrowing() {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyGrowing, g.Plant.TemplateID)
		}

		tmpl := eligible[s.opts.intn(len(eligible))]
		g.Plant = &domain.Plant{
			TemplateID: tmpl.ID,
			StartedAt:  now,
			Health:     tmpl.Health,
		}
		g.AddUses(domain.ProductWater, starter)

		result = &SeedResult{
			Plant:        tmpl,
			Health:       tmpl.Health,
			StarterWater: starter,
			Message:      fmt.Sprintf(MsgSeeded, tmpl.Article, tmpl.Name, tmpl.Rarity),
		}
		return nil
	})
	if !committed(err) {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPlantSeeded, logger.AttrKeyUserID, userID, "plant", result.Plant.ID)
	publish(ctx, s.bus, event.NewPlantEvent(event.PlantSeeded, event.PlantPayloadV1{
		UserID:  userID,
		PlantID: result.Plant.ID,
		Health:  result.Health,
	}))
	return result, nil
}

// Abandon shovels the current plant out without any reward
func (s *service) Abandon(ctx context.Context, userID string) error {
	var plant domain.Plant
	err := s.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if !g.IsGrowing() {
			return domain.ErrNoActivePlant
		}
		plant = *g.Plant
		g.Plant = nil
		g.ClampPoints()
		return nil
	})
	if !committed(err) {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgPlantAbandoned, logger.AttrKeyUserID, userID, "plant", plant.TemplateID)
	publish(ctx, s.bus, event.NewPlantEvent(event.PlantAbandoned, event.PlantPayloadV1{
		UserID:  userID,
		PlantID: plant.TemplateID,
		Health:  plant.Health,
	}))
	return nil
}

// Apply uses one unit of a product on the current plant
func (s *service) Apply(ctx context.Context, userID, productID string, category domain.ProductCategory) (*ApplyResult, error) {
	var result *ApplyResult
	err := s.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if !g.IsGrowing() {
			return domain.ErrNoActivePlant
		}

		product, ok := s.cat.Product(productID)
		if !ok || product.Category != category {
			return fmt.Errorf("%w: %s is not a %s product", domain.ErrUnknownProduct, productID, category)
		}

		tmpl, ok := s.cat.Plant(g.Plant.TemplateID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPlant, g.Plant.TemplateID)
		}

		if !g.UseProduct(product.ID) {
			return fmt.Errorf("%w: %s", domain.ErrOutOfStock, product.ID)
		}

		outcome := s.engine.ApplyProduct(g.Plant, product, tmpl.Threshold)
		awarded := s.cat.Defaults.Points.AddHealth
		g.Credit(awarded)

		result = &ApplyResult{
			Outcome:       outcome,
			Product:       product,
			Health:        g.Plant.Health,
			PointsAwarded: awarded,
			Message:       applyMessage(outcome, product),
		}
		return nil
	})
	if !committed(err) {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgProductApplied,
		logger.AttrKeyUserID, userID,
		"product", result.Product.ID,
		"outcome", result.Outcome,
		"health", result.Health)
	publish(ctx, s.bus, event.NewProductAppliedEvent(userID, result.Product.ID,
		string(result.Product.Category), string(result.Outcome), result.Health))
	return result, nil
}

func applyMessage(outcome Outcome, product domain.Product) string {
	if outcome == OutcomeHealed {
		return MsgHealed
	}
	if product.Category == domain.CategoryTool {
		return fmt.Sprintf(MsgOverdoseTool, product.ID)
	}
	return fmt.Sprintf(MsgOverdoseProduct, product.ID)
}

// Water applies the water product
func (s *service) Water(ctx context.Context, userID string) (*ApplyResult, error) {
	return s.Apply(ctx, userID, domain.ProductWater, domain.CategoryWater)
}

// Fertilize applies the named fertilizer
func (s *service) Fertilize(ctx context.Context, userID, productID string) (*ApplyResult, error) {
	return s.Apply(ctx, userID, productID, domain.CategoryFertilizer)
}

// Prune applies the pruner tool
func (s *service) Prune(ctx context.Context, userID string) (*ApplyResult, error) {
	return s.Apply(ctx, userID, domain.ProductPruner, domain.CategoryTool)
}

// Buy debits cost x amount and grants amount x uses-per-purchase
func (s *service) Buy(ctx context.Context, userID, productID string, amount int) (*BuyResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", domain.ErrInvalidAmount, amount)
	}

	product, ok := s.cat.Product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}
	if product.Cost > 0 && int64(amount) > math.MaxInt64/product.Cost {
		return nil, fmt.Errorf("%w: amount %d is too large", domain.ErrInvalidAmount, amount)
	}
	if amount > math.MaxInt32/product.Uses {
		return nil, fmt.Errorf("%w: amount %d is too large", domain.ErrInvalidAmount, amount)
	}

	cost := product.Cost * int64(amount)
	gained := amount * product.Uses

	var result *BuyResult
	err := s.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if err := debit(g, cost); err != nil {
			return err
		}
		g.AddUses(product.ID, gained)

		result = &BuyResult{
			Product:    product,
			Amount:     amount,
			Cost:       cost,
			UsesGained: gained,
			Uses:       g.Uses(product.ID),
			Points:     g.Points,
			Message:    fmt.Sprintf(MsgBought, amount, product.ID),
		}
		return nil
	})
	if !committed(err) {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgProductBought,
		logger.AttrKeyUserID, userID,
		"product", product.ID,
		"amount", amount,
		"cost", cost)
	publish(ctx, s.bus, event.NewProductBoughtEvent(userID, product.ID, amount, cost))
	return result, nil
}

// Convert moves points into the external bank. The ledger is debited first;
// if the deposit then fails the points are refunded.
func (s *service) Convert(ctx context.Context, userID string, amount int64) (*ConvertResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", domain.ErrInvalidAmount, amount)
	}

	ok, err := s.bank.HasAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up bank account: %w", err)
	}
	if !ok {
		return nil, domain.ErrNoExternalAccount
	}

	var remaining int64
	err = s.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if err := debit(g, amount); err != nil {
			return err
		}
		remaining = g.Points
		return nil
	})
	if !committed(err) {
		return nil, err
	}

	if err := s.bank.Deposit(ctx, userID, amount); err != nil {
		return nil, s.refund(ctx, userID, amount, err)
	}

	logger.FromContext(ctx).Info(LogMsgPointsConverted, logger.AttrKeyUserID, userID, "amount", amount)
	publish(ctx, s.bus, event.NewPointsConvertedEvent(userID, amount))
	return &ConvertResult{
		Amount:  amount,
		Points:  remaining,
		Message: fmt.Sprintf(MsgConverted, amount),
	}, nil
}

func (s *service) refund(ctx context.Context, userID string, amount int64, depositErr error) error {
	log := logger.FromContext(ctx)
	if errors.Is(depositErr, bank.ErrNoAccount) {
		depositErr = fmt.Errorf("%w: %w", domain.ErrNoExternalAccount, depositErr)
	}

	err := s.store.Update(ctx, userID, func(g *domain.Gardener) error {
		g.Credit(amount)
		return nil
	})
	if !committed(err) {
		log.Error(LogMsgConvertRefundFailed, logger.AttrKeyUserID, userID, "amount", amount, "error", err)
		return fmt.Errorf("failed to deposit credits: %w", errors.Join(depositErr, err))
	}

	log.Warn(LogMsgConvertRefunded, logger.AttrKeyUserID, userID, "amount", amount, "error", depositErr)
	return fmt.Errorf("failed to deposit credits: %w", depositErr)
}

// Profile returns the gardener's full read model
func (s *service) Profile(ctx context.Context, userID string) (*Profile, error) {
	var profile *Profile
	s.store.View(ctx, userID, func(g domain.Gardener) {
		profile = &Profile{
			UserID:   userID,
			Points:   g.Points,
			Badges:   s.badgeViews(g.Badges),
			Products: s.productHoldings(g.Products),
		}
		if g.Plant != nil {
			profile.Plant = s.plantView(&g)
		}
	})
	return profile, nil
}

// State returns the current plant, or domain.ErrNoActivePlant
func (s *service) State(ctx context.Context, userID string) (*PlantView, error) {
	var view *PlantView
	s.store.View(ctx, userID, func(g domain.Gardener) {
		if g.Plant != nil {
			view = s.plantView(&g)
		}
	})
	if view == nil {
		return nil, domain.ErrNoActivePlant
	}
	return view, nil
}

// Plants lists the templates a seed can currently turn into
func (s *service) Plants() []domain.PlantTemplate {
	return s.cat.EligiblePlants(s.opts.now().Month())
}

// Plant finds a template by display name, ignoring case
func (s *service) Plant(name string) (*domain.PlantTemplate, error) {
	tmpl, ok := s.cat.PlantByName(strings.TrimSpace(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPlant, name)
	}
	return &tmpl, nil
}

// Products lists every product for sale
func (s *service) Products() []domain.Product {
	return s.cat.ProductList()
}

func (s *service) plantView(g *domain.Gardener) *PlantView {
	now := s.opts.now()
	view := &PlantView{
		PlantID:              g.Plant.TemplateID,
		Name:                 g.Plant.TemplateID,
		Health:               g.Plant.Health,
		StartedAt:            g.Plant.StartedAt,
		DecayIntervalMinutes: s.cat.Defaults.Timers.Degradation,
	}

	tmpl, ok := s.cat.Plant(g.Plant.TemplateID)
	if !ok {
		return view
	}
	view.Name = tmpl.Name
	view.Article = tmpl.Article
	view.Rarity = tmpl.Rarity
	view.Image = tmpl.Image
	view.Threshold = tmpl.Threshold
	view.Degradation = s.engine.Degradation(g, tmpl)
	view.MinutesToBloom = s.engine.TimeToBloom(g.Plant, tmpl, now).Minutes()
	if d, ok := s.engine.TimeToDeath(g.Plant.Health, view.Degradation.Rate); ok {
		m := d.Minutes()
		view.MinutesToDeath = &m
	}
	return view
}

func (s *service) badgeViews(ids []string) []BadgeView {
	out := make([]BadgeView, 0, len(ids))
	for _, id := range ids {
		b, _ := s.cat.Badge(id)
		out = append(out, BadgeView{ID: id, Name: Title(id), Modifier: b.Modifier})
	}
	return out
}

func (s *service) productHoldings(held map[string]int) []ProductHolding {
	out := make([]ProductHolding, 0, len(held))
	for id, uses := range held {
		h := ProductHolding{ID: id, Name: Title(id), Uses: uses}
		if p, ok := s.cat.Product(id); ok {
			h.Purchases = float64(uses) / float64(p.Uses)
			h.Modifier = p.Modifier
		}
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b ProductHolding) int { return strings.Compare(a.ID, b.ID) })
	return out
}
