package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter format, e.g. "10-M"
	MFAIssuer          string
	PosthogAPIKey      string

	// Memorandum workflow
	ValidationPermissionsFile string
	RequireRejectionComment   bool
	LevelPermissions          domain.LevelPermissions

	// OpenTelemetry
	OTelEnabled             bool
	OTelStdout              bool
	OTLPMetricsEndpoint     string
	TelemetryServiceVersion string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "hr-memo-app")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	v.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("MFA_ISSUER", "HR Memo")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("VALIDATION_PERMISSIONS_FILE", "")
	v.SetDefault("REQUIRE_REJECTION_COMMENT", true)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_STDOUT", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	v.SetDefault("SERVICE_VERSION", "dev")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:               v.GetString("PGSQL_URL"),
		Port:                      v.GetString("PORT"),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:             strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:            v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		JWTIssuer:                 v.GetString("JWT_ISSUER"),
		RefreshTokenCookieName:    v.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		RefreshTokenCookiePath:    v.GetString("REFRESH_TOKEN_COOKIE_PATH"),
		GoogleClientID:            v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:        v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:         v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:           v.GetString("FRONTEND_BASE_URL"),
		CORSAllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:            v.GetString("LOGIN_RATE_LIMIT"),
		MFAIssuer:                 v.GetString("MFA_ISSUER"),
		PosthogAPIKey:             v.GetString("POSTHOG_API_KEY"),
		ValidationPermissionsFile: v.GetString("VALIDATION_PERMISSIONS_FILE"),
		RequireRejectionComment:   v.GetBool("REQUIRE_REJECTION_COMMENT"),
		OTelEnabled:               v.GetBool("OTEL_ENABLED"),
		OTelStdout:                v.GetBool("OTEL_STDOUT"),
		OTLPMetricsEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"),
		TelemetryServiceVersion:   v.GetString("SERVICE_VERSION"),
	}

	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = parseDuration(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)

	if len(cfg.CORSAllowedOrigins) == 0 && cfg.FrontendBaseURL != "" {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
		if cfg.IsProduction {
			return nil, fmt.Errorf("STORAGE_DRIVER=%s is not allowed in production", StorageDriverMemory)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	perms := domain.DefaultLevelPermissions()
	if cfg.ValidationPermissionsFile != "" {
		loaded, err := LoadLevelPermissions(cfg.ValidationPermissionsFile)
		if err != nil {
			return nil, err
		}
		perms = loaded
	}
	cfg.LevelPermissions = perms

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
