package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/talentboard/jobboard/internal/core/domain"
)

type Config struct {
	Port          string        `env:"PORT,            default=8080"`
	Env           string        `env:"ENV,             default=development"`
	LogLevel      string        `env:"LOG_LEVEL,       default=info"`
	JWTSecret     string        `env:"JWT_SECRET,      required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=24h"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL, default=http://localhost:8080"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Profile ProfileConfig
	Jobs    JobsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type ProfileConfig struct {
	// RequiredFields lists the profile attributes a complete profile must have.
	RequiredFields []string `env:"PROFILE_REQUIRED_FIELDS"`
	// AdminEmails are granted the admin role when they sign up.
	AdminEmails []string `env:"ADMIN_EMAILS"`
}

type JobsConfig struct {
	EventWorkers int `env:"JOB_EVENT_WORKERS, default=4"`
}

// Load reads a .env file when present, then the environment, using
// go-envconfig. The required-field set falls back to the default and is
// validated against the profile schema.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	if len(cfg.Profile.RequiredFields) == 0 {
		cfg.Profile.RequiredFields = append([]string(nil), domain.DefaultRequiredFields...)
	}
	if err := cfg.RequiredFields().Validate(); err != nil {
		return nil, fmt.Errorf("config: PROFILE_REQUIRED_FIELDS: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	return &cfg, nil
}

// RequiredFields returns the configured completeness rule.
func (c *Config) RequiredFields() domain.RequiredFields {
	return domain.RequiredFields(c.Profile.RequiredFields)
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
