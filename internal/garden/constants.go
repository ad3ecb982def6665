package garden

// Outcome of applying a product to a plant
type Outcome string

const (
	OutcomeHealed   Outcome = "healed"
	OutcomeOverdose Outcome = "overdose"
)

// Resolution is what the completion check decided for a plant
type Resolution string

const (
	ResolutionGrowing Resolution = "growing"
	ResolutionBloomed Resolution = "bloomed"
	ResolutionDied    Resolution = "died"
)

// User-facing messages
const (
	MsgHealed          = "Your plant got some health back!"
	MsgOverdoseProduct = "You gave too much of %s. Your plant lost some health."
	MsgOverdoseTool    = "You used the %s too many times! Your plant lost some health."
	MsgSeeded          = "The farmer identified your seed as %s %s (%s). Take good care of it and water it often."
	MsgAbandoned       = "You successfully shovelled your plant out."
	MsgBought          = "You bought %d x %s."
	MsgConverted       = "%d Gro-cash successfully exchanged for credits."
	MsgBloomed         = "Your plant made it! You are rewarded with the **%s** badge and you have received **%d** points."
	MsgBloomedNoBadge  = "Your plant made it! You have received **%d** points."
	MsgDied            = "Your plant died!"
)

// Log messages
const (
	LogMsgGardenersLoaded     = "Gardeners loaded"
	LogMsgGardenersFlushed    = "Dirty gardeners flushed"
	LogMsgPersistFailed       = "Failed to persist gardener"
	LogMsgPublishFailed       = "Failed to publish garden event"
	LogMsgPlantSeeded         = "Plant seeded"
	LogMsgPlantAbandoned      = "Plant abandoned"
	LogMsgProductApplied      = "Product applied"
	LogMsgProductBought       = "Product bought"
	LogMsgPointsConverted     = "Points converted"
	LogMsgConvertRefunded     = "Deposit failed, conversion debit refunded"
	LogMsgConvertRefundFailed = "Deposit failed and refund could not be saved"
	LogMsgPlantResolved       = "Plant resolved"
)

// Defaults
const (
	// DefaultStarterWater is granted on seed when the catalog leaves starter_water unset
	DefaultStarterWater = 5
)
