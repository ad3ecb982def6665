package garden

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PlantTycoon_Go/internal/catalog"
	"github.com/osse101/PlantTycoon_Go/internal/domain"
	"github.com/osse101/PlantTycoon_Go/internal/event"
	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

// errUnchanged aborts an update whose record needs no write
var errUnchanged = errors.New("unchanged")

// Reconciler applies the time-based transitions for one gardener at a time.
// The scheduled jobs call it once per user per pass.
type Reconciler struct {
	store  *Store
	cat    *catalog.Catalog
	engine *Engine
	bus    event.Bus
	opts   options
}

// DecayResult is what one decay tick did to a plant
type DecayResult struct {
	PlantID       string
	Rate          float64
	Health        float64
	PointsAwarded int64
}

// CompletionResult is a plant that bloomed or died this tick
type CompletionResult struct {
	Resolution Resolution
	PlantID    string
	Health     float64
	Badge      string
	// BadgeAwarded is false when the badge had already been earned
	BadgeAwarded bool
	Reward       int64
	Message      string
}

// HealthAlert is a low-health warning to send to the gardener
type HealthAlert struct {
	PlantID string
	Health  float64
	Message string
}

// NewReconciler creates a reconciler over store. bus may be nil.
func NewReconciler(store *Store, cat *catalog.Catalog, bus event.Bus, opts ...Option) *Reconciler {
	return &Reconciler{
		store:  store,
		cat:    cat,
		engine: NewEngine(cat),
		bus:    bus,
		opts:   defaultOptions(opts),
	}
}

// Decay subtracts one tick of degradation and credits the growing reward.
// Returns domain.ErrNoActivePlant when there is nothing to decay and
// domain.ErrUnknownPlant when the plant's template is gone. On a save failure
// the decay still applies and both the result and the error are returned.
func (r *Reconciler) Decay(ctx context.Context, userID string) (*DecayResult, error) {
	var result *DecayResult
	err := r.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if !g.IsGrowing() {
			return domain.ErrNoActivePlant
		}
		tmpl, ok := r.cat.Plant(g.Plant.TemplateID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPlant, g.Plant.TemplateID)
		}

		rate := r.engine.Degradation(g, tmpl).Rate
		g.Plant.Health -= rate
		awarded := r.cat.Defaults.Points.Growing
		g.Credit(awarded)

		result = &DecayResult{
			PlantID:       tmpl.ID,
			Rate:          rate,
			Health:        g.Plant.Health,
			PointsAwarded: awarded,
		}
		return nil
	})
	if !committed(err) {
		return nil, err
	}
	return result, err
}

// Complete resolves a plant that has bloomed or died. It returns nil and no
// error when the plant is still growing or there is no plant. The event is
// published once the user's lock is released.
func (r *Reconciler) Complete(ctx context.Context, userID string) (*CompletionResult, error) {
	now := r.opts.now()

	var result *CompletionResult
	err := r.store.Update(ctx, userID, func(g *domain.Gardener) error {
		if !g.IsGrowing() {
			return errUnchanged
		}
		tmpl, ok := r.cat.Plant(g.Plant.TemplateID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPlant, g.Plant.TemplateID)
		}

		switch r.engine.Resolve(g.Plant, tmpl, now) {
		case ResolutionBloomed:
			reward := tmpl.Reward
			g.Credit(reward)
			awarded := g.AddBadge(tmpl.Badge)
			result = &CompletionResult{
				Resolution:   ResolutionBloomed,
				PlantID:      tmpl.ID,
				Health:       g.Plant.Health,
				Badge:        tmpl.Badge,
				BadgeAwarded: awarded,
				Reward:       reward,
				Message:      bloomMessage(tmpl.Badge, awarded, reward),
			}
		case ResolutionDied:
			result = &CompletionResult{
				Resolution: ResolutionDied,
				PlantID:    tmpl.ID,
				Health:     g.Plant.Health,
				Message:    MsgDied,
			}
		default:
			return errUnchanged
		}

		g.Plant = nil
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil, nil
	}
	if !committed(err) {
		return nil, err
	}

	evtType := event.PlantBloomed
	if result.Resolution == ResolutionDied {
		evtType = event.PlantDied
	}
	logger.FromContext(ctx).Info(LogMsgPlantResolved,
		logger.AttrKeyUserID, userID,
		"plant", result.PlantID,
		"resolution", result.Resolution)
	publish(ctx, r.bus, event.NewPlantEvent(evtType, event.PlantPayloadV1{
		UserID:  userID,
		PlantID: result.PlantID,
		Health:  result.Health,
		Badge:   result.Badge,
		Reward:  result.Reward,
	}))
	return result, err
}

func bloomMessage(badge string, awarded bool, reward int64) string {
	if awarded {
		return fmt.Sprintf(MsgBloomed, Title(badge), reward)
	}
	return fmt.Sprintf(MsgBloomedNoBadge, reward)
}

// CheckHealth reports whether the plant is below the alert threshold and, if
// so, picks a message from the catalog's pool. It never changes state.
func (r *Reconciler) CheckHealth(ctx context.Context, userID string) (*HealthAlert, bool) {
	var alert *HealthAlert
	r.store.View(ctx, userID, func(g domain.Gardener) {
		if g.Plant == nil || g.Plant.Health >= r.cat.Defaults.Notification.MaxHealth {
			return
		}
		alert = &HealthAlert{
			PlantID: g.Plant.TemplateID,
			Health:  g.Plant.Health,
		}
	})
	if alert == nil {
		return nil, false
	}

	pool := r.cat.Notifications
	alert.Message = pool[r.opts.intn(len(pool))]

	publish(ctx, r.bus, event.NewPlantEvent(event.HealthLow, event.PlantPayloadV1{
		UserID:  userID,
		PlantID: alert.PlantID,
		Health:  alert.Health,
	}))
	return alert, true
}
