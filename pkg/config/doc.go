// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 behind
// a small API:
//
//   - LoadEnv loads one or more .env files into the process environment,
//     falling back to ./.env when called without arguments.
//   - Load parses the environment into any struct with `env` field tags
//     and caches the result per type for the lifetime of the process.
//   - MustLoadEnv and MustLoad panic on failure, for configuration the
//     service cannot start without.
//   - ResetCache and ForceReloadConfig exist for tests that mutate the
//     environment between loads.
//
// Typical startup:
//
//	var cfg struct {
//		session.Config
//		pg.Config
//		Environment string `env:"APP_ENV" envDefault:"development"`
//	}
//	config.MustLoad(&cfg)
package config
