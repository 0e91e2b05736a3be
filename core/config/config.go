package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache      sync.Map // reflect.Type -> parsed config value
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. The first call for a given
// type reads the environment (after a one-time .env autoload); subsequent
// calls return the cached value, so all loaders observe identical config.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is fine; the environment itself is authoritative.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse %s from environment: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup
// where a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
