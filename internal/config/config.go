package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/bytes"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL" validate:"required"`
	Port        string `env:"PORT" envDefault:"8080" validate:"required,numeric"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	Import ImportOptions
	Redis  RedisOptions
	S3     S3Options

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPath    string `env:"METRICS_PATH" envDefault:"/metrics" validate:"startswith=/"`
}

type ImportOptions struct {
	BaseDir      string        `env:"IMPORT_BASE_DIR" envDefault:"."`
	Matcher      string        `env:"IMPORT_MATCHER" envDefault:"contains" validate:"oneof=contains exact fuzzy"`
	SessionStore string        `env:"IMPORT_SESSION_STORE" envDefault:"memory" validate:"oneof=memory redis"`
	SessionTTL   time.Duration `env:"IMPORT_SESSION_TTL" envDefault:"30m" validate:"gt=0"`
	MaxUpload    string        `env:"IMPORT_MAX_UPLOAD" envDefault:"10M"`
}

type RedisOptions struct {
	URL string `env:"REDIS_URL"`
}

type S3Options struct {
	Bucket   string `env:"IMPORT_S3_BUCKET"`
	Region   string `env:"IMPORT_S3_REGION" envDefault:"us-east-1"`
	Endpoint string `env:"IMPORT_S3_ENDPOINT"`
}

// Load reads the given .env files when present, then the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Import.SessionStore == "redis" && strings.TrimSpace(c.Redis.URL) == "" {
		return fmt.Errorf("invalid configuration: REDIS_URL is required when IMPORT_SESSION_STORE=redis")
	}
	if _, err := c.MaxUploadBytes(); err != nil {
		return fmt.Errorf("invalid configuration: IMPORT_MAX_UPLOAD: %w", err)
	}
	return nil
}

// MaxUploadBytes parses IMPORT_MAX_UPLOAD, which uses the same units as
// echo's body limit ("512K", "10M").
func (c Config) MaxUploadBytes() (int64, error) {
	n, err := bytes.Parse(c.Import.MaxUpload)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %q", c.Import.MaxUpload)
	}
	return n, nil
}

func (c Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}
