package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Shell    ShellConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=https://elf-finance-api.onrender.com/api"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	PhonePrefix string `env:"PHONE_PREFIX, default=+91"`
	// TokenStore selects where refresh tokens are persisted: redis, mongo or memory.
	TokenStore   string        `env:"TOKEN_STORE,        default=redis"`
	TokenSealKey string        `env:"TOKEN_SEAL_KEY"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,          default=720h"`
	CookieSecure bool          `env:"COOKIE_SECURE,      default=false"`
	DeviceIdle   time.Duration `env:"DEVICE_IDLE_TIMEOUT, default=12h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=microfin_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type ShellConfig struct {
	BaseURL   string `env:"SHELL_BASE_URL"`
	Platform  string `env:"SHELL_PLATFORM,   default=ios"`
	PublicURL string `env:"SHELL_PUBLIC_URL, default=https://microfin-blond.vercel.app/"`
}

// Load reads an optional .env file and then the environment using go-envconfig.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	switch cfg.Session.TokenStore {
	case "redis", "mongo", "memory":
	default:
		return nil, fmt.Errorf("config: unknown TOKEN_STORE %q", cfg.Session.TokenStore)
	}
	return &cfg, nil
}
