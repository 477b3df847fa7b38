package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=3000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Assets AssetsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pokedex"`
}

// RedisConfig is optional: an empty Addr disables login throttling.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type AuthConfig struct {
	LoginMaxAttempts  int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LoginLockout      time.Duration `env:"LOGIN_LOCKOUT,        default=15m"`
	RequestsPerMinute int           `env:"AUTH_RATE_PER_MINUTE, default=30"`
}

type AssetsConfig struct {
	Dir      string `env:"ASSETS_DIR,      default=assets"`
	BaseURL  string `env:"ASSETS_BASE_URL, default=http://localhost:3000/assets/pokemons"`
	SeedFile string `env:"SEED_FILE,       default=data/pokemons.json"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if cfg.Auth.LoginMaxAttempts < 1 {
		return nil, fmt.Errorf("LOGIN_MAX_ATTEMPTS must be at least 1, got %d", cfg.Auth.LoginMaxAttempts)
	}
	return &cfg, nil
}
