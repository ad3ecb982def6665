package worker

// ============================================================================
// Job Names
// ============================================================================

// Names of the scheduled garden jobs, used as the job metric label
const (
	JobNameDecay        = "decay"
	JobNameCompletion   = "completion"
	JobNameNotification = "notification"
)

// DefaultPassConcurrency bounds how many gardeners a pass handles at once
const DefaultPassConcurrency = 8

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerQueueFull  = "Worker queue full, job dropped"
	LogMsgWorkerPoolDrain  = "Worker pool shutdown timeout, queued jobs dropped"
	LogMsgNotificationSent = "Notification delivered"
	LogMsgNotifyFailed     = "Failed to notify gardener"
)

// ============================================================================
// Log Messages - Garden Jobs
// ============================================================================

// Log messages for scheduled garden passes
const (
	LogMsgPassCompleted     = "Garden pass completed"
	LogMsgGardenerSkipped   = "Gardener skipped by pass"
	LogMsgGardenerFailed    = "Gardener could not be processed"
	LogMsgPlantDecayed      = "Plant decayed"
	LogMsgLowHealthNotified = "Low health alert queued"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
