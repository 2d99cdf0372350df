package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Port            int
	MaxLoanAmount   float64
	MaxTermYears    int
	MaxRate         float64
	MaxHoldingYears int
	RedisAddr       string
	SQLitePath      string
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// Load reads the configuration from environment variables, with an optional
// .env file.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MaxLoanAmount:   getEnvFloat("MAX_LOAN_AMOUNT", 1e12),
		MaxTermYears:    getEnvInt("MAX_TERM_YEARS", 50),
		MaxRate:         getEnvFloat("MAX_RATE", 1.0),
		MaxHoldingYears: getEnvInt("MAX_HOLDING_YEARS", 50),
		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		SQLitePath:      getEnvString("SQLITE_PATH", "fratak.db"),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "fratak-server"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
