package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// CurrencyCode is the single deployment currency; the ledger is not
	// multi-currency.
	CurrencyCode string

	// OrgTimezone is the fixed organizational time zone all effective dates
	// are interpreted in, never the host's local zone.
	OrgTimezone string
	OrgLocation *time.Location

	// POSBookCommission books POS commission as a separate linked outflow
	// entry when true, per the deployment's accounting convention.
	POSBookCommission bool

	// AuthRateLimit is the ulule/limiter formatted rate for auth routes.
	AuthRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "treasury-app")
	viper.SetDefault("CURRENCY_CODE", "EGP")
	viper.SetDefault("ORG_TIMEZONE", "Africa/Cairo")
	viper.SetDefault("POS_BOOK_COMMISSION", true)
	viper.SetDefault("AUTH_RATE_LIMIT", "20-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")

	cfg.OrgTimezone = viper.GetString("ORG_TIMEZONE")
	loc, err := time.LoadLocation(cfg.OrgTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ORG_TIMEZONE %q: %w", cfg.OrgTimezone, err)
	}
	cfg.OrgLocation = loc

	cfg.POSBookCommission = viper.GetBool("POS_BOOK_COMMISSION")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	return cfg, nil
}
