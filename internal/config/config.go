package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache TTL parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Supported values for DB_DRIVER
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // Database driver: sqlite, mysql or postgres
	DBPath     string        // SQLite database file
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	RedisAddr  string        // Redis server address, empty disables the read cache
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Lifetime of cached read responses
	LogLevel   string        // Log level: debug, info, warn, error
	IsProd     bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		cacheTTL = 60 * time.Second
	}
	return &Config{
		AppPort:    getEnv("APP_PORT", "8000"),        // Application port
		DBDriver:   getEnv("DB_DRIVER", DriverSQLite), // Database driver
		DBPath:     getEnv("DB_PATH", "./wallet.db"),  // SQLite database file
		DBUser:     os.Getenv("DB_USER"),              // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),          // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),    // Database host
		DBPort:     os.Getenv("DB_PORT"),              // Database port
		DBName:     getEnv("DB_NAME", "wallet"),       // Database name
		RedisAddr:  os.Getenv("REDIS_ADDR"),           // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),           // Redis password
		RedisDB:    redisDB,                           // Redis database number
		CacheTTL:   cacheTTL,                          // Cache TTL
		LogLevel:   getEnv("LOG_LEVEL", "info"),       // Log level
		IsProd:     os.Getenv("IS_PROD") == "true",    // Is production environment
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() (string, error) {
	switch c.DBDriver {
	case DriverSQLite:
		// Foreign keys are off by default in SQLite
		return c.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	case DriverMySQL:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true", nil
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// CacheEnabled reports whether a Redis address was configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
