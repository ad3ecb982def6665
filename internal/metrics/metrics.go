package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	HTTPRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsRejected,
			Help: HelpTextHTTPRequestsRejected,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Scheduler Metrics
var (
	JobPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobPassesTotal,
			Help: HelpTextJobPassesTotal,
		},
		[]string{LabelJob, LabelStatus},
	)

	JobPassDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobPassDuration,
			Help:    HelpTextJobPassDuration,
			Buckets: JobPassBuckets,
		},
		[]string{LabelJob},
	)

	GardenersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGardenersProcessed,
			Help: HelpTextGardenersProcessed,
		},
		[]string{LabelJob},
	)

	GardenersSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGardenersSkipped,
			Help: HelpTextGardenersSkipped,
		},
		[]string{LabelJob, LabelReason},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationFailures,
			Help: HelpTextNotificationFailures,
		},
		[]string{LabelSink},
	)

	PersistenceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceFailures,
			Help: HelpTextPersistenceFailures,
		},
	)

	ActiveGardeners = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveGardeners,
			Help: HelpTextActiveGardeners,
		},
	)
)

// Business Metrics
var (
	PlantsSeeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsSeeded,
			Help: HelpTextPlantsSeeded,
		},
		[]string{LabelPlant},
	)

	PlantsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsResolved,
			Help: HelpTextPlantsResolved,
		},
		[]string{LabelPlant, LabelOutcome},
	)

	Interventions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInterventions,
			Help: HelpTextInterventions,
		},
		[]string{LabelProduct, LabelCategory, LabelOutcome},
	)

	ProductsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProductsBought,
			Help: HelpTextProductsBought,
		},
		[]string{LabelProduct},
	)

	PointsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsSpent,
			Help: HelpTextPointsSpent,
		},
	)

	PointsConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsConverted,
			Help: HelpTextPointsConverted,
		},
	)

	LowHealthAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLowHealthAlerts,
			Help: HelpTextLowHealthAlerts,
		},
		[]string{LabelPlant},
	)
)
