package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration shared by the three service binaries. Each
// binary reads the same set of variables; the remote service URLs are only
// used by the sales service.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Remote service endpoints used by the sales service.
	ProductServiceURL    string
	AccountingServiceURL string
	RemoteTimeout        time.Duration

	// RateLimit is a limiter format string, e.g. "300-M" for 300 requests
	// per minute per client IP.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PRODUCT_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("ACCOUNTING_SERVICE_URL", "http://localhost:8082")
	viper.SetDefault("REMOTE_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.ProductServiceURL = viper.GetString("PRODUCT_SERVICE_URL")
	cfg.AccountingServiceURL = viper.GetString("ACCOUNTING_SERVICE_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	remoteTimeoutStr := viper.GetString("REMOTE_TIMEOUT")
	remoteTimeout, err := time.ParseDuration(remoteTimeoutStr)
	if err != nil {
		remoteTimeout = 5 * time.Second
		if remoteTimeoutStr != "" {
			log.Printf("Warning: Invalid value for REMOTE_TIMEOUT ('%s'). Defaulting to %s.\n", remoteTimeoutStr, remoteTimeout)
		}
	}
	cfg.RemoteTimeout = remoteTimeout

	return cfg, nil
}
