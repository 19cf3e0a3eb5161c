package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAppName        = "SpinCash"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultCountryCode    = "91"
	defaultOTPTTL         = 5 * time.Minute
	defaultSignupBonus    = 100
	defaultPublicDir      = "./public"
	defaultOTPPerMinute   = 5
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName            string
	AppEnv             string
	Port               string
	LogLevel           string
	DatabaseURL        string
	RedisURL           string
	AdminPasswordHash  string
	AdminToken         string
	DefaultCountryCode string
	OTPTTL             time.Duration
	OTPPerMinute       int
	SignupBonus        int64
	PublicDir          string
	ShutdownPeriod     time.Duration
	IdempotencyTTL     time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", defaultCountryCode),
		OTPTTL:             defaultOTPTTL,
		OTPPerMinute:       defaultOTPPerMinute,
		SignupBonus:        defaultSignupBonus,
		PublicDir:          getEnv("PUBLIC_DIR", defaultPublicDir),
		ShutdownPeriod:     defaultShutdownDelay,
		IdempotencyTTL:     defaultIdempotencyTTL,
	}

	if v := os.Getenv("OTP_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OTP_TTL: %w", err)
		}
		cfg.OTPTTL = d
	}

	if v := os.Getenv("OTP_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OTP_PER_MINUTE: %w", err)
		}
		cfg.OTPPerMinute = n
	}

	if v := os.Getenv("SIGNUP_BONUS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIGNUP_BONUS: %w", err)
		}
		cfg.SignupBonus = n
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
		}
		cfg.IdempotencyTTL = d
	}

	// ADMIN_PASSWORD_HASH carries a pre-computed bcrypt hash; ADMIN_PASSWORD
	// is a plaintext fallback that is hashed here and never stored.
	if cfg.AdminPasswordHash == "" {
		plain := os.Getenv("ADMIN_PASSWORD")
		if plain == "" {
			return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return Config{}, fmt.Errorf("hash ADMIN_PASSWORD: %w", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}
	if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
		return Config{}, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
	}

	if cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN must be set")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development environment, where the
// database and cache may be absent and in-memory stores are used instead.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
