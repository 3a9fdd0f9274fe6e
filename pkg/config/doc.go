// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - the default .env file in the working directory is loaded once, on the
//     first call to Load, if it exists;
//   - LoadEnv loads additional .env files explicitly;
//   - Load parses the environment into any struct using `env` tags and caches
//     the result per type, so later calls are cheap and consistent;
//   - MustLoad panics on failure, for configuration the process cannot start
//     without;
//   - ResetCache drops cached values, handy in tests.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionstate/pkg/config"
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//
//	manager, err := session.NewFromConfig(cfg, session.WithStore(store))
//
// # Errors
//
// Parsing failures are reported as ErrParsingConfig joined with the
// underlying env error and are not cached, so a corrected environment can be
// loaded again. A nil destination returns ErrNilPointer.
package config
