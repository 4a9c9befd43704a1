package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	CORSAllowedOrigins []string

	// Accounting settings
	Currency             string     // ISO currency code every transaction must carry
	FiscalYearStartMonth time.Month // First month of the exercice comptable
	AccountingStandard   string     // Accounting referential, SYSCOHADA for the OHADA zone

	// Auth settings, consumed by the surrounding ERP gateway
	SecretKey           string
	TokenExpiryDuration time.Duration

	// Rate limiting, in ulule/limiter formatted form (e.g. "100-M")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CURRENCY", "XAF")
	viper.SetDefault("FISCAL_YEAR_START_MONTH", 1)
	viper.SetDefault("ACCOUNTING_STANDARD", "SYSCOHADA")
	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")
	cfg.Currency = viper.GetString("CURRENCY")
	cfg.AccountingStandard = viper.GetString("ACCOUNTING_STANDARD")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.SecretKey = viper.GetString("SECRET_KEY")
	if cfg.SecretKey == "" && cfg.IsProduction {
		log.Println("Warning: SECRET_KEY environment variable not set.")
	}
	cfg.TokenExpiryDuration = viper.GetDuration("TOKEN_EXPIRY_DURATION")

	startMonth := viper.GetInt("FISCAL_YEAR_START_MONTH")
	if startMonth < 1 || startMonth > 12 {
		log.Printf("Warning: Invalid value for FISCAL_YEAR_START_MONTH (%d). Defaulting to 1.\n", startMonth)
		startMonth = 1
	}
	cfg.FiscalYearStartMonth = time.Month(startMonth)

	return cfg, nil
}
