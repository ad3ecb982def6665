package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept at startup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingPlantTycoon = "Starting PlantTycoon"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Catalog
// =============================================================================

const (
	LogMsgCatalogLoaded     = "Catalog loaded"
	LogMsgTimerOverride     = "Scheduler interval overridden by configuration"
	ErrMsgFailedLoadCatalog = "failed to load catalog"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStoreOpened           = "Gardener store opened"
	LogMsgGardenersLoaded       = "Gardeners loaded"
	ErrMsgFailedConnectDB       = "failed to connect to database"
	ErrMsgFailedMigrate         = "failed to run migrations"
	ErrMsgFailedLoadGardeners   = "failed to load gardeners"
	ErrMsgUnsupportedBackend    = "unsupported store backend"
	ErrMsgFailedCreateDataDir   = "failed to create data directory"
	LogMsgBankOpened            = "Bank opened"
	ErrMsgFailedConnectRedis    = "failed to connect to redis"
	BankBackendRedis            = "redis"
	BankBackendMemory           = "memory"
	RedisPingTimeout            = 5 * time.Second
	LogMsgNotifierOpened        = "Notifier opened"
	ErrMsgFailedOpenDiscord     = "failed to open discord session"
	NotifierBackendDiscord      = "discord"
	NotifierBackendLog          = "log"
	LogMsgJobScheduled          = "Job scheduled"
	ErrMsgFailedScheduleJob     = "failed to schedule job"
	ErrMsgFailedStartScheduler  = "failed to start scheduler"
	ErrMsgInvalidSchedulerTimer = "scheduler interval must be positive"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownScheduler      = "Shutting down scheduler..."
	LogMsgShuttingDownNotifier       = "Draining notification queue..."
	LogMsgFlushingStore              = "Flushing gardener store..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgSchedulerShutdownFailed    = "Scheduler shutdown failed"
	LogMsgNotifierShutdownFailed     = "Notification pool shutdown failed"
	LogMsgStoreFlushFailed           = "Store flush failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgRedisCloseFailed           = "Redis close failed"
)
