package config

import "time"

// Store backends
const (
	StoreBackendPostgres = "postgres"
	StoreBackendFile     = "file"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "plant-tycoon"
	DefaultVersion           = "dev"
	DefaultLogDir            = "logs"
	DefaultCatalogPath       = "configs/catalog.yaml"
	DefaultStoreBackend      = StoreBackendFile
	DefaultDataFile          = "data/gardeners.json"
	DefaultDBName            = "planttycoon"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultPassConcurrency   = 8
	DefaultNotifyWorkers     = 2
	DefaultNotifyQueueSize   = 256
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultEventMaxRetries   = 5
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
)
