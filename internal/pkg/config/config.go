package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`

	// TipsRatePerMinute bounds completion-backed requests per user.
	TipsRatePerMinute float64 `env:"TIPS_RATE_PER_MINUTE, default=10"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Completion CompletionConfig
}

type MongoConfig struct {
	URI              string `env:"MONGO_URI,               default=mongodb://localhost:27017"`
	Database         string `env:"MONGO_DB,                default=habit_tracker"`
	UsersCollection  string `env:"MONGO_USERS_COLLECTION,  default=users"`
	HabitsCollection string `env:"MONGO_HABITS_COLLECTION, default=habits"`
}

// RedisConfig is optional: an empty Addr disables the suggestion cache.
type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR"`
	DB            int           `env:"REDIS_DB,             default=0"`
	SuggestionTTL time.Duration `env:"SUGGESTION_CACHE_TTL, default=1h"`
}

type CompletionConfig struct {
	Endpoint   string        `env:"OPENAI_ENDPOINT, required"`
	APIKey     string        `env:"OPENAI_API_KEY, required"`
	Deployment string        `env:"OPENAI_DEPLOYMENT,  default=gpt-35-turbo-instruct"`
	APIVersion string        `env:"OPENAI_API_VERSION, default=2024-04-01-preview"`
	Timeout    time.Duration `env:"OPENAI_TIMEOUT,     default=30s"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
