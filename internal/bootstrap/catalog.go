package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/PlantTycoon_Go/internal/catalog"
	"github.com/osse101/PlantTycoon_Go/internal/config"
)

// LoadCatalog reads the catalog file and applies the configured scheduler
// interval overrides to its timers, so the scheduler and the plant views
// agree on how often each job runs.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	ApplyTimerOverrides(&cat.Defaults.Timers, cfg)

	slog.Info(LogMsgCatalogLoaded,
		"path", cfg.CatalogPath,
		"plants", len(cat.Plants),
		"event_plants", len(cat.Events),
		"products", len(cat.Products),
		"badges", len(cat.Badges),
		"decay_interval", cat.Defaults.Timers.DecayInterval(),
		"completion_interval", cat.Defaults.Timers.CompletionInterval(),
		"notification_interval", cat.Defaults.Timers.NotificationInterval())

	return cat, nil
}

// ApplyTimerOverrides replaces each catalog timer whose configured interval is positive
func ApplyTimerOverrides(t *catalog.Timers, cfg *config.Config) {
	override := func(name string, minutes *float64, d time.Duration) {
		if d <= 0 {
			return
		}
		slog.Info(LogMsgTimerOverride, "job", name, "interval", d)
		*minutes = d.Minutes()
	}
	override("decay", &t.Degradation, cfg.DecayInterval)
	override("completion", &t.Completion, cfg.CompletionInterval)
	override("notification", &t.Notification, cfg.NotificationInterval)
}
