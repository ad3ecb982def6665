package catalog

// Catalog section names
const (
	SectionPlants        = "plants"
	SectionProducts      = "products"
	SectionBadges        = "badges"
	SectionDefaults      = "defaults"
	SectionNotifications = "notifications"
)

// DefaultPath is where the catalog is read from when CATALOG_PATH is unset
const DefaultPath = "configs/catalog.yaml"
