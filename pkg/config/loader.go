package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cacheEntry holds one parsed configuration type.
type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

var (
	// cache maps reflect.Type of a config struct to its *cacheEntry.
	cache sync.Map

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v using `env` struct tags.
// Each configuration type is parsed once; later calls copy the cached value.
// The default .env file is loaded on first use if it exists.
//
// Example:
//
//	type SessionConfig struct {
//		Name string        `env:"SESSION_NAME" envDefault:"sid"`
//		TTL  time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24m"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// A missing .env file is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	raw, _ := cache.LoadOrStore(typeKey[T](), &cacheEntry{})
	entry := raw.(*cacheEntry)

	entry.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			entry.err = errors.Join(ErrParsingConfig, err)
			return
		}
		entry.value = parsed
	})

	if entry.err != nil {
		// Failed parses are not cached so a fixed environment can be retried.
		cache.CompareAndDelete(typeKey[T](), entry)
		return entry.err
	}

	cached, ok := entry.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = cached
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// LoadEnv loads the given .env files into the process environment without
// overriding variables that are already set.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}

// typeKey returns the cache key for T.
func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
