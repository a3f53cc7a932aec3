// Package config provides type-safe environment variable loading with
// caching. Each configuration type is loaded once per application
// lifetime and cached for subsequent calls.
//
// A .env file in the working directory is loaded automatically on first
// use; a missing file is not an error. Parsing is delegated to the
// caarlos0/env library, so configuration structs declare their
// environment bindings with `env` and `envDefault` struct tags.
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. The first call for a
// given concrete type reads the environment; later calls return the
// cached value, so every caller observes identical configuration.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(*cfg)
	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %T: %w", *cfg, err)
	}

	cache[t] = *cfg
	return nil
}

// MustLoad is Load that panics on failure. Intended for application
// startup where a broken environment should fail fast.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
