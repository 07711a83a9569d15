package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration, loaded from the environment
// (main loads a .env file first when present).
type Config struct {
	Addr       string        `envconfig:"ADDR" default:":8080"`
	DBPath     string        `envconfig:"DB_PATH" default:"maisoncafe.db"`
	RedisAddr  string        `envconfig:"REDIS_ADDR"`
	CacheTTL   time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	SimLatency time.Duration `envconfig:"SIM_LATENCY" default:"0"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
