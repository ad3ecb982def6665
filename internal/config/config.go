package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	LogDir      string
	APIKey      string // API key for authentication

	CatalogPath  string
	StoreBackend string
	DataFile     string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// RedisAddr selects the Redis bank; empty means the in-memory bank
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DiscordToken enables DM notifications; empty means log only
	DiscordToken string

	// Zero intervals fall back to the catalog timers
	DecayInterval        time.Duration
	CompletionInterval   time.Duration
	NotificationInterval time.Duration
	PassConcurrency      int
	NotifyWorkers        int
	NotifyQueueSize      int

	EventMaxRetries int
	DeadLetterPath  string
	ShutdownTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		APIKey:      getEnv("API_KEY", ""),

		CatalogPath:  getEnv("CATALOG_PATH", DefaultCatalogPath),
		StoreBackend: getEnv("STORE_BACKEND", DefaultStoreBackend),
		DataFile:     getEnv("DATA_FILE", DefaultDataFile),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		DiscordToken: getEnv("DISCORD_TOKEN", ""),

		DecayInterval:        getEnvAsDuration("DECAY_INTERVAL", 0),
		CompletionInterval:   getEnvAsDuration("COMPLETION_INTERVAL", 0),
		NotificationInterval: getEnvAsDuration("NOTIFICATION_INTERVAL", 0),
		PassConcurrency:      getEnvAsInt("SCHEDULER_PASS_CONCURRENCY", DefaultPassConcurrency),
		NotifyWorkers:        getEnvAsInt("NOTIFY_WORKERS", DefaultNotifyWorkers),
		NotifyQueueSize:      getEnvAsInt("NOTIFY_QUEUE_SIZE", DefaultNotifyQueueSize),

		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		DeadLetterPath:  getEnv("EVENT_DEAD_LETTER_PATH", DefaultDeadLetterPath),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting
func (c *Config) Validate() error {
	var errs []error

	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY environment variable must be set for security"))
	}
	if c.CatalogPath == "" {
		errs = append(errs, errors.New("CATALOG_PATH must be set"))
	}

	switch c.StoreBackend {
	case StoreBackendPostgres:
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			errs = append(errs, errors.New("DB_HOST, DB_NAME and DB_USER must be set for the postgres store"))
		}
	case StoreBackendFile:
		if c.DataFile == "" {
			errs = append(errs, errors.New("DATA_FILE must be set for the file store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendPostgres, StoreBackendFile, c.StoreBackend))
	}

	if c.PassConcurrency < 1 {
		errs = append(errs, fmt.Errorf("SCHEDULER_PASS_CONCURRENCY must be at least 1, got %d", c.PassConcurrency))
	}
	if c.DecayInterval < 0 || c.CompletionInterval < 0 || c.NotificationInterval < 0 {
		errs = append(errs, errors.New("scheduler intervals must not be negative"))
	}

	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration such as "90s", falling back to defaultValue
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
