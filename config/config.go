package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	HTTPAddr     string `env:"HTTP_ADDR, default=:8080"`
	LogLevel     string `env:"LOG_LEVEL, default=info"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	DatabaseURL  string        `env:"DATABASE_URL, required"`
	AutoMigrate  bool          `env:"DB_AUTO_MIGRATE, default=true"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS, default=25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS, default=5"`
	ConnMaxLife  time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`

	Token TokenConfig `env:", prefix=TOKEN_"`
}

// TokenConfig mirrors the Token:* settings. Every JWT_* key is required and
// a missing one aborts startup.
type TokenConfig struct {
	SecretKey     string        `env:"JWT_SECRET_KEY, required"`
	Audience      string        `env:"JWT_AUDIENCE_TOKEN, required"`
	Issuer        string        `env:"JWT_ISSUER_TOKEN, required"`
	ExpireMinutes int           `env:"JWT_EXPIRE_MINUTES, required"`
	RefreshWindow time.Duration `env:"REFRESH_WINDOW, default=168h"`
	RotateRefresh bool          `env:"ROTATE_REFRESH, default=false"`
}

func (t TokenConfig) AccessTokenTTL() time.Duration {
	return time.Duration(t.ExpireMinutes) * time.Minute
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Token.ExpireMinutes <= 0 {
		return fmt.Errorf("%w: TOKEN_JWT_EXPIRE_MINUTES must be positive", ErrConfig)
	}
	if c.Token.RefreshWindow < 0 {
		return fmt.Errorf("%w: TOKEN_REFRESH_WINDOW must not be negative", ErrConfig)
	}
	return nil
}
