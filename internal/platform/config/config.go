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
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	MigrationsPath string

	// Rate limit in the ulule/limiter formatted form, e.g. "100-M".
	RateLimit          string
	CORSAllowedOrigins []string

	// Bookkeeping
	AccountCacheTTL        time.Duration
	DefaultOtherIncomeCode string
	FiscalYearStartMonth   time.Month
	ReportRequestTimeout   time.Duration
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
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	viper.SetDefault("DEFAULT_OTHER_INCOME_CODE", "6280")
	viper.SetDefault("FISCAL_YEAR_START_MONTH", 1)
	viper.SetDefault("REPORT_REQUEST_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cacheTTLStr := viper.GetString("ACCOUNT_CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for ACCOUNT_CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL.String())
	}

	reportTimeoutStr := viper.GetString("REPORT_REQUEST_TIMEOUT")
	reportTimeout, err := time.ParseDuration(reportTimeoutStr)
	if err != nil {
		reportTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for REPORT_REQUEST_TIMEOUT ('%s'). Defaulting to %s.\n", reportTimeoutStr, reportTimeout.String())
	}

	month := viper.GetInt("FISCAL_YEAR_START_MONTH")
	if month < 1 || month > 12 {
		log.Printf("Warning: Invalid value for FISCAL_YEAR_START_MONTH (%d). Defaulting to January.\n", month)
		month = 1
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.AccountCacheTTL = cacheTTL
	cfg.DefaultOtherIncomeCode = viper.GetString("DEFAULT_OTHER_INCOME_CODE")
	cfg.FiscalYearStartMonth = time.Month(month)
	cfg.ReportRequestTimeout = reportTimeout

	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
