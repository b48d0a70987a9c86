package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "FamilyMoney"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
	defaultHistoryPageSize = 10
	defaultMinAmountCents  = 1

	// HeaderStyleText renders the balances header as plain text.
	HeaderStyleText = "text"
	// HeaderStyleEmoji renders the balances header as a money emoji.
	HeaderStyleEmoji = "emoji"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string
	AppEnv          string
	Port            string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ShutdownPeriod  time.Duration
	IdempotencyTTL  time.Duration

	// AllowGuestTransactions permits unauthenticated transaction submissions.
	AllowGuestTransactions bool
	// HistoryPageSize is the default page size for transaction history queries.
	HistoryPageSize int
	// MinAmountCents is the minimum absolute transaction amount, in cents.
	// The default of 1 rejects zero-amount entries; set to 0 to allow
	// zero-amount memo transactions.
	MinAmountCents int64

	// Display hints consumed by presentation layers, never by the ledger.
	HideHeader  bool
	HeaderStyle string
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RefreshSecret:   os.Getenv("REFRESH_SECRET"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", defaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL),
		ShutdownPeriod:  getEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownDelay),
		IdempotencyTTL:  getEnvDuration("IDEMPOTENCY_TTL", defaultIdempotencyTTL),

		AllowGuestTransactions: getEnvBool("ALLOW_GUEST_TRANSACTIONS", false),
		HistoryPageSize:        getEnvInt("HISTORY_PAGE_SIZE", defaultHistoryPageSize),
		MinAmountCents:         getEnvInt64("MIN_AMOUNT_CENTS", defaultMinAmountCents),

		HideHeader:  getEnvBool("HIDE_HEADER", false),
		HeaderStyle: strings.ToLower(getEnv("HEADER_STYLE", HeaderStyleText)),
	}

	if cfg.HistoryPageSize < 1 {
		return Config{}, fmt.Errorf("HISTORY_PAGE_SIZE must be at least 1, got %d", cfg.HistoryPageSize)
	}
	if cfg.MinAmountCents < 0 {
		return Config{}, fmt.Errorf("MIN_AMOUNT_CENTS must not be negative, got %d", cfg.MinAmountCents)
	}
	if cfg.HeaderStyle != HeaderStyleText && cfg.HeaderStyle != HeaderStyleEmoji {
		return Config{}, fmt.Errorf("HEADER_STYLE must be %q or %q, got %q", HeaderStyleText, HeaderStyleEmoji, cfg.HeaderStyle)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.JWTSecret + "-refresh"
	}
	if !IsDev(cfg.AppEnv) {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if os.Getenv("JWT_SECRET") == "" {
			return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the given environment name is a development flavor.
func IsDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
