package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	StoreDriver    string        `mapstructure:"STORE_DRIVER"`
	StorePath      string        `mapstructure:"STORE_PATH"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	RedisPrefix    string        `mapstructure:"REDIS_PREFIX"`
	S3Bucket       string        `mapstructure:"S3_BUCKET"`
	S3Region       string        `mapstructure:"S3_REGION"`
	S3Endpoint     string        `mapstructure:"S3_ENDPOINT"`
	S3PathStyle    bool          `mapstructure:"S3_PATH_STYLE"`
	S3Prefix       string        `mapstructure:"S3_PREFIX"`
	S3AccessKey    string        `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretKey    string        `mapstructure:"S3_SECRET_ACCESS_KEY"`
	AuthSigningKey string        `mapstructure:"AUTH_SIGNING_KEY"`
	AuthIssuer     string        `mapstructure:"AUTH_ISSUER"`
	DemoSecret     string        `mapstructure:"DEMO_SECRET"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

// devSigningKey signs tokens when no key is configured in development.
const devSigningKey = "hms-development-signing-key"

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"STORE_DRIVER", "STORE_PATH", "DATABASE_URL", "REDIS_URL", "REDIS_PREFIX",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE", "S3_PREFIX",
	"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	"AUTH_SIGNING_KEY", "AUTH_ISSUER", "DEMO_SECRET",
	"CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REQUEST_TIMEOUT",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", persistence.DriverFile)
	v.SetDefault("STORE_PATH", "./data")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PREFIX", "hms:")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "hms/")
	v.SetDefault("AUTH_ISSUER", "hms")
	v.SetDefault("DEMO_SECRET", "changeme")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("REQUEST_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range envKeys {
		v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if cfg.AuthSigningKey == "" && cfg.IsDev() {
		cfg.AuthSigningKey = devSigningKey
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is usable: the store driver is
// known and has its settings, and tokens can be signed.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(persistence.Drivers, c.StoreDriver) {
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be one of %s, got %q",
			strings.Join(persistence.Drivers, ", "), c.StoreDriver))
	}
	switch c.StoreDriver {
	case persistence.DriverFile, persistence.DriverSQLite, persistence.DriverBadger:
		if c.StorePath == "" {
			errs = append(errs, fmt.Errorf("STORE_PATH is required for the %s driver", c.StoreDriver))
		}
	case persistence.DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case persistence.DriverRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis driver"))
		}
	case persistence.DriverS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 driver"))
		}
	}

	if c.AuthSigningKey == "" {
		errs = append(errs, errors.New("AUTH_SIGNING_KEY is required outside development"))
	} else if c.IsProduction() && c.AuthSigningKey == devSigningKey {
		errs = append(errs, errors.New("AUTH_SIGNING_KEY must not be the development key in production"))
	}
	if c.IsProduction() && c.DemoSecret == "changeme" {
		errs = append(errs, errors.New("DEMO_SECRET must be changed in production"))
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative"))
	}
	return errors.Join(errs...)
}

// Persistence translates the store settings for persistence.Open.
func (c *Config) Persistence() persistence.Config {
	return persistence.Config{
		Driver:      c.StoreDriver,
		Path:        c.StorePath,
		DatabaseURL: c.DatabaseURL,
		RedisAddr:   c.RedisURL,
		RedisPrefix: c.RedisPrefix,
		S3: persistence.S3Config{
			Bucket:          c.S3Bucket,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			PathStyle:       c.S3PathStyle,
			Prefix:          c.S3Prefix,
			AccessKeyID:     c.S3AccessKey,
			SecretAccessKey: c.S3SecretKey,
		},
	}
}
