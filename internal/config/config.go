// Package config loads process configuration from the environment, an optional
// .env file and the YAML security policy.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// minJWTSecretLength enforces a 256-bit HMAC key.
const minJWTSecretLength = 32

var weakSecrets = []string{"secret", "password", "test", "admin", "default", "changeme"}

// AppConfig is the configuration shared by the API server and the worker.
type AppConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	Version     string `env:"VERSION" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	SecurityConfigPath string `env:"SECURITY_CONFIG" envDefault:"config/security.yaml"`

	// ExposeInternalErrors returns raw error text in 500 responses. Development only.
	ExposeInternalErrors bool `env:"EXPOSE_INTERNAL_ERRORS" envDefault:"false"`

	// AuthRateLimit is the sustained rate of signup/login requests per client IP per minute.
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthRateBurst int `env:"AUTH_RATE_BURST" envDefault:"10"`
	// TrustProxyHeaders keys the rate limiter on X-Forwarded-For / X-Real-IP. Enable only behind a proxy.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	BodyLimitBytes int64         `env:"BODY_LIMIT_BYTES" envDefault:"1048576"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// CORSAllowedOrigins lists browser origins allowed to call the API. Empty disables CORS.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	TracingEnabled bool `env:"TRACING_ENABLED" envDefault:"false"`

	Worker WorkerConfig
	Notify NotifyConfig
}

// NotifyConfig configures the moderation chat notifications. A channel with an
// empty webhook URL is disabled.
type NotifyConfig struct {
	SlackWebhookURL   string        `env:"SLACK_WEBHOOK_URL"`
	DiscordWebhookURL string        `env:"DISCORD_WEBHOOK_URL"`
	Timeout           time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
	MaxConcurrent     int           `env:"NOTIFY_MAX_CONCURRENT" envDefault:"10"`
}

// WorkerConfig configures the maintenance worker.
type WorkerConfig struct {
	PruneSchedule      string        `env:"PRUNE_SCHEDULE" envDefault:"@hourly"`
	QueueGaugeSchedule string        `env:"QUEUE_GAUGE_SCHEDULE" envDefault:"*/5 * * * *"`
	Timezone           string        `env:"WORKER_TIMEZONE" envDefault:"UTC"`
	HealthPort         int           `env:"WORKER_HEALTH_PORT" envDefault:"9091"`
	JobTimeout         time.Duration `env:"WORKER_JOB_TIMEOUT" envDefault:"1m"`
}

// Load reads .env (when present) and then the environment.
// Variables already set in the environment win over .env.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.AuthRateLimit <= 0 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be positive")
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if cfg.Notify.MaxConcurrent <= 0 {
		return nil, fmt.Errorf("NOTIFY_MAX_CONCURRENT must be positive")
	}
	return &cfg, nil
}

// ValidateJWTSecret rejects empty, short and well-known secrets.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (256 bits)", minJWTSecretLength)
	}
	// セキュリティ: よくある弱い値の繰り返しを拒否
	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.ReplaceAll(strings.Trim(lower, "0123456789"), weak, "") == "" {
			return errors.New("JWT_SECRET must not be a common weak value")
		}
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values fall back to info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
