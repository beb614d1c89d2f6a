// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion  string
	LogLevel    string
	MetricsName string

	// Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Entity store
	DBDriver          string
	DBDSN             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBDebug           bool
	StoreTimeout      time.Duration

	// MongoDB search index
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Redis read cache, disabled when RedisAddrs is empty
	RedisAddrs    string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int
	CacheTTL      time.Duration

	// Kafka change feed, disabled when KafkaBrokers is empty
	KafkaBrokers  string
	KafkaClientID string
	KafkaTopic    string

	// Synchronization listener
	SyncWorkers           int
	SyncMaxAttempts       int
	SyncBaseBackoff       time.Duration
	SyncMaxBackoff        time.Duration
	SyncReconcileInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:  getEnv("APP_VERSION", "1.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsName: getEnv("METRICS_NAMESPACE", "flight_inventory"),

		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT", 15)) * time.Second,

		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBDSN:             getEnv("DB_DSN", "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable"),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME", 30)) * time.Minute,
		DBDebug:           getEnvAsBool("DB_DEBUG", false),
		StoreTimeout:      time.Duration(getEnvAsInt("STORE_TIMEOUT_MS", 5000)) * time.Millisecond,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "flight_inventory"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RedisAddrs:    getEnv("REDIS_ADDRS", ""),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL", 300)) * time.Second,

		KafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
		KafkaClientID: getEnv("KAFKA_CLIENT_ID", "flight-inventory-service"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "inventory.changes"),

		SyncWorkers:           getEnvAsInt("SYNC_WORKERS", 4),
		SyncMaxAttempts:       getEnvAsInt("SYNC_MAX_ATTEMPTS", 5),
		SyncBaseBackoff:       time.Duration(getEnvAsInt("SYNC_BASE_BACKOFF_MS", 100)) * time.Millisecond,
		SyncMaxBackoff:        time.Duration(getEnvAsInt("SYNC_MAX_BACKOFF_MS", 5000)) * time.Millisecond,
		SyncReconcileInterval: time.Duration(getEnvAsInt("SYNC_RECONCILE_INTERVAL", 60)) * time.Second,
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres, mysql or sqlite, got %q", c.DBDriver)
	}
	if c.SyncWorkers <= 0 {
		return fmt.Errorf("SYNC_WORKERS must be positive, got %d", c.SyncWorkers)
	}
	if c.SyncMaxAttempts <= 0 {
		return fmt.Errorf("SYNC_MAX_ATTEMPTS must be positive, got %d", c.SyncMaxAttempts)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT_MS must be positive")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
