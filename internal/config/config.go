package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session storage backends.
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Session SessionConfig
	Import  ImportConfig
	Seed    SeedConfig
	Notify  NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level   string
	Format  string
	Service string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	VerifyPasswords       bool
}

// SessionConfig controls the signed-in user record and the simulated
// latency of login and registration.
type SessionConfig struct {
	Storage         string
	KeyPrefix       string
	LoginDelayMS    int
	RegisterDelayMS int
}

// ImportConfig bounds schedule uploads.
type ImportConfig struct {
	MaxBytes int64
}

// SeedConfig points at an optional YAML file replacing the embedded demo data.
type SeedConfig struct {
	File string
}

// NotificationConfig holds stub outbound notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	storage := strings.ToLower(getEnv("SESSION_STORAGE", StorageMemory))
	if storage != StorageRedis && storage != StorageMemory {
		return nil, fmt.Errorf("invalid SESSION_STORAGE %q: want %s or %s", storage, StorageRedis, StorageMemory)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "shift-swap-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			Service: getEnv("APP_NAME", "shift-swap-service"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60*24),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			VerifyPasswords:       getEnvAsBool("AUTH_VERIFY_PASSWORDS", false),
		},
		Session: SessionConfig{
			Storage:         storage,
			KeyPrefix:       getEnv("SESSION_KEY_PREFIX", "dominos_user"),
			LoginDelayMS:    getEnvAsInt("SESSION_LOGIN_DELAY_MS", 800),
			RegisterDelayMS: getEnvAsInt("SESSION_REGISTER_DELAY_MS", 1000),
		},
		Import: ImportConfig{
			MaxBytes: int64(getEnvAsInt("IMPORT_MAX_BYTES", 5*1024*1024)),
		},
		Seed: SeedConfig{
			File: os.Getenv("SEED_FILE"),
		},
		Notify: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// LoginDelay returns the simulated login latency.
func (s SessionConfig) LoginDelay() time.Duration {
	return millis(s.LoginDelayMS)
}

// RegisterDelay returns the simulated registration latency.
func (s SessionConfig) RegisterDelay() time.Duration {
	return millis(s.RegisterDelayMS)
}

func millis(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
