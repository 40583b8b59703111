package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*options)

type options struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "SHAPE_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles loads the given .env files instead of the default one.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from vars instead of the process environment.
// No .env file is read.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// Load fills the struct dst points to from the environment.
func Load(dst any, opts ...Option) error {
	if dst == nil {
		return ErrNilPointer
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: %T", ErrInvalidConfigType, dst)
	}
	if rv.IsNil() {
		return ErrNilPointer
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrInvalidConfigType, dst)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	switch {
	case o.environment != nil:
	case len(o.files) > 0:
		if err := godotenv.Load(o.files...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	default:
		// The default .env file is optional.
		_ = godotenv.Load()
	}

	if err := env.ParseWithOptions(dst, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad(dst any, opts ...Option) {
	if err := Load(dst, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
