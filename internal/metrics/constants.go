package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRequestsRejected = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Scheduler metric names
const (
	MetricNameJobPassesTotal       = "garden_job_passes_total"
	MetricNameJobPassDuration      = "garden_job_pass_duration_seconds"
	MetricNameGardenersProcessed   = "garden_job_gardeners_processed_total"
	MetricNameGardenersSkipped     = "garden_job_gardeners_skipped_total"
	MetricNameNotificationFailures = "garden_notification_failures_total"
	MetricNamePersistenceFailures  = "garden_persistence_failures_total"
)

// Business metric names
const (
	MetricNamePlantsSeeded    = "garden_plants_seeded_total"
	MetricNamePlantsResolved  = "garden_plants_resolved_total"
	MetricNameInterventions   = "garden_interventions_total"
	MetricNameProductsBought  = "garden_products_bought_total"
	MetricNamePointsSpent     = "garden_points_spent_total"
	MetricNamePointsConverted = "garden_points_converted_total"
	MetricNameLowHealthAlerts = "garden_low_health_alerts_total"
	MetricNameActiveGardeners = "garden_gardeners"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRequestsRejected = "Total number of HTTP requests rejected by auth or rate limiting"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Scheduler metric help text
const (
	HelpTextJobPassesTotal       = "Total number of scheduler passes by job and status"
	HelpTextJobPassDuration      = "Scheduler pass duration in seconds"
	HelpTextGardenersProcessed   = "Total number of gardeners visited by scheduler passes"
	HelpTextGardenersSkipped     = "Total number of gardeners skipped by scheduler passes"
	HelpTextNotificationFailures = "Total number of notifications that could not be delivered"
	HelpTextPersistenceFailures  = "Total number of gardener saves that failed"
)

// Business metric help text
const (
	HelpTextPlantsSeeded    = "Total number of plants seeded"
	HelpTextPlantsResolved  = "Total number of plants that bloomed, died or were abandoned"
	HelpTextInterventions   = "Total number of products applied by outcome"
	HelpTextProductsBought  = "Total number of product purchases"
	HelpTextPointsSpent     = "Total points spent buying products"
	HelpTextPointsConverted = "Total points converted to the external currency"
	HelpTextLowHealthAlerts = "Total number of low health alerts raised"
	HelpTextActiveGardeners = "Number of gardener records held in memory"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelJob      = "job"
	LabelReason   = "reason"
	LabelPlant    = "plant"
	LabelOutcome  = "outcome"
	LabelProduct  = "product"
	LabelCategory = "category"
	LabelSink     = "sink"
)

// Label values
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OutcomeBloomed   = "bloomed"
	OutcomeDied      = "died"
	OutcomeAbandoned = "abandoned"

	ReasonNoPlant      = "no_plant"
	ReasonUnknownPlant = "unknown_plant"
	ReasonPersistence  = "persistence"
	ReasonError        = "error"

	ReasonUnauthorized = "unauthorized"
	ReasonRateLimited  = "rate_limited"

	SinkQueueFull = "queue_full"
	SinkDelivery  = "delivery"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// JobPassBuckets covers passes from a handful of gardeners up to large populations
var JobPassBuckets = []float64{.001, .01, .05, .1, .5, 1, 5, 15, 60}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
