// Package config populates configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// .env files are loaded into the process environment first (existing
// variables win), then the target struct is filled from its `env` tags.
//
// # Usage
//
//	type Settings struct {
//	    DefaultMode shape.Mode `env:"DEFAULT_MODE" envDefault:"loose"`
//	}
//
//	var s Settings
//	if err := config.Load(&s, config.WithPrefix("SHAPE_")); err != nil {
//	    return err
//	}
//
// Without WithEnvFiles the default `.env` in the working directory is loaded
// when present and silently skipped otherwise. Files named by WithEnvFiles
// must exist.
//
// # Error Handling
//
//   - ErrNilPointer        – nil pointer passed to Load.
//   - ErrInvalidConfigType – target is not a pointer to a struct.
//   - ErrLoadingEnvFile    – an explicitly requested .env file could not be read.
//   - ErrParsingConfig     – env vars could not be parsed into the struct.
//
// # Testing
//
// WithEnvironment replaces the process environment with a fixed map, so
// tests do not have to mutate os.Environ.
package config
