// Package config loads typed configuration from the environment.
//
// Every package that needs settings exposes a Config struct with `env` and
// `envDefault` tags (pg.Config, lookups.Config, jwt.Config, ...). Load parses
// such a struct with caarlos0/env after reading an optional .env file through
// godotenv, and caches the result per type:
//
//	var cfg lookups.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// LoadEnv reads explicit dotenv files and ResetCache drops cached values,
// which tests use to re-read a changed environment.
package config
