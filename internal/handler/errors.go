package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// Operation names used in logs
const (
	OpSeed      = "Seed"
	OpShovel    = "Shovel"
	OpWater     = "Water"
	OpFertilize = "Fertilize"
	OpPrune     = "Prune"
	OpBuy       = "Buy"
	OpConvert   = "Convert"
	OpProfile   = "Profile"
	OpState     = "Plant state"
	OpPlant     = "Plant lookup"
)

// Success messages for API responses
const (
	MsgShovelled = "You successfully shovelled your plant out."
)
