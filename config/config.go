package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Config is read from the environment after an optional .env file.
type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://127.0.0.1:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"crm"`

	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     int    `env:"ACCESS_TOKEN_TTL" envDefault:"60"`   // minutes
	RefreshTokenTTL    int    `env:"REFRESH_TOKEN_TTL" envDefault:"168"` // hours
	ResetTokenTTL      int    `env:"RESET_TOKEN_TTL" envDefault:"15"`    // minutes

	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTL       int    `env:"CACHE_TTL" envDefault:"60"`         // seconds
	MemoryCacheTTL int    `env:"MEMORY_CACHE_TTL" envDefault:"300"` // seconds

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"CRM <no-reply@crm.local>"`

	CORSOrigins     string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173"`
	RateLimitMax    int    `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"` // seconds

	WorkerCount       int `env:"WORKER_COUNT" envDefault:"4"`
	WorkerQueueSize   int `env:"WORKER_QUEUE_SIZE" envDefault:"256"`
	OverdueDigestHour int `env:"OVERDUE_DIGEST_HOUR" envDefault:"8"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@crm.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath       string `env:"LOG_PATH"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"50"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"30"`
	LogCompress   bool   `env:"LOG_COMPRESS" envDefault:"false"`
}

// LoadConfig loads configuration from the environment. Missing .env files are not an error.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have no safe default.
func (c *Config) Validate() error {
	var problems []string
	if c.AccessTokenSecret == "" {
		problems = append(problems, "ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		problems = append(problems, "REFRESH_TOKEN_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 || c.ResetTokenTTL <= 0 {
		problems = append(problems, "token TTLs must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %d", c.Port))
	}
	if c.WorkerCount <= 0 || c.WorkerQueueSize <= 0 {
		problems = append(problems, "WORKER_COUNT and WORKER_QUEUE_SIZE must be positive")
	}
	if c.OverdueDigestHour < 0 || c.OverdueDigestHour > 23 {
		problems = append(problems, "OVERDUE_DIGEST_HOUR must be within 0-23")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) Debug() bool {
	return c.GinMode == "debug"
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * time.Hour
}

func (c *Config) ResetTTL() time.Duration {
	return time.Duration(c.ResetTokenTTL) * time.Minute
}

func (c *Config) ResponseCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

func (c *Config) LocalCacheTTL() time.Duration {
	return time.Duration(c.MemoryCacheTTL) * time.Second
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimitWindow) * time.Second
}

// CORSOriginList splits CORS_ORIGINS on commas.
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// MailEnabled reports whether an SMTP host is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}
