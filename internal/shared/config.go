package shared

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"prod"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr  string        `env:"METRICS_ADDR"` // empty: /metrics only on the API router
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	MaxBodyBytes int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Caching is off when RedisAddr is empty.
	RedisAddr string        `env:"REDIS_ADDR"`
	RedisPass string        `env:"REDIS_PASSWORD"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"15m"`

	// batch client
	ValuerBase   string `env:"VALUER_BASE_URL" envDefault:"http://localhost:8080"`
	BatchWorkers int    `env:"BATCH_WORKERS" envDefault:"8"`
	BatchRPS     int    `env:"BATCH_RPS" envDefault:"20"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if c.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.BatchWorkers <= 0 {
		return Config{}, fmt.Errorf("BATCH_WORKERS must be positive, got %d", c.BatchWorkers)
	}
	return c, nil
}
