package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabasePath string
	Port         string
	IsProduction bool

	// Default display currency used when a request omits one.
	DefaultDisplayCurrency string

	// Remote document store for multi-device sync. An empty URL keeps the
	// app fully local with an in-memory store standing in for the remote.
	RemoteURL   string
	RemoteToken string

	SyncInterval time.Duration

	CORSAllowedOrigins []string

	RateLimitPeriod time.Duration
	RateLimitCount  int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_PATH", "triplebook.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_DISPLAY_CURRENCY", "USD")
	viper.SetDefault("REMOTE_URL", "")
	viper.SetDefault("REMOTE_TOKEN", "")
	viper.SetDefault("SYNC_INTERVAL", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_COUNT", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabasePath = viper.GetString("DB_PATH")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DefaultDisplayCurrency = viper.GetString("DEFAULT_DISPLAY_CURRENCY")

	cfg.RemoteURL = viper.GetString("REMOTE_URL")
	cfg.RemoteToken = viper.GetString("REMOTE_TOKEN")
	if cfg.RemoteURL == "" {
		log.Println("Warning: REMOTE_URL not set. Sync will use an in-memory store; data stays on this device.")
	}

	syncIntervalStr := viper.GetString("SYNC_INTERVAL")
	syncInterval, err := time.ParseDuration(syncIntervalStr)
	if err != nil {
		syncInterval = 30 * time.Second
		log.Printf("Warning: Invalid value for SYNC_INTERVAL ('%s'). Defaulting to %s.\n", syncIntervalStr, syncInterval.String())
	}
	cfg.SyncInterval = syncInterval

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	ratePeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	ratePeriod, err := time.ParseDuration(ratePeriodStr)
	if err != nil {
		ratePeriod = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", ratePeriodStr, ratePeriod.String())
	}
	cfg.RateLimitPeriod = ratePeriod
	cfg.RateLimitCount = viper.GetInt64("RATE_LIMIT_COUNT")

	return cfg, nil
}
