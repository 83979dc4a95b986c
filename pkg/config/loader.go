package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*loader)

type loader struct {
	files    []string
	filesSet bool
	environ  map[string]string
	prefix   string
}

// WithEnvFiles reads variables from the given dotenv files.
// Missing files are skipped. Real environment variables win over file values,
// and earlier files win over later ones. Calling it without files disables
// dotenv loading.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, files...)
		l.filesSet = true
	}
}

// WithEnviron replaces the process environment as the variable source.
func WithEnviron(vars map[string]string) Option {
	return func(l *loader) {
		l.environ = vars
	}
}

// WithPrefix makes Load look up every variable with the given prefix.
func WithPrefix(prefix string) Option {
	return func(l *loader) {
		l.prefix = prefix
	}
}

// Load parses environment variables into a new T according to its `env`
// struct tags. By default the .env file in the working directory is read when
// present.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	if !l.filesSet {
		l.files = []string{".env"}
	}

	vars, err := l.variables()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: vars,
		Prefix:      l.prefix,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}

// MustLoad is Load that panics on failure. Meant for process startup.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// variables merges dotenv files under the base environment.
func (l *loader) variables() (map[string]string, error) {
	base := l.environ
	if base == nil {
		base = environ()
	}

	vars := make(map[string]string, len(base))
	for _, file := range l.files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", file, err))
		}
		for k, v := range values {
			if _, set := vars[k]; !set {
				vars[k] = v
			}
		}
	}
	for k, v := range base {
		vars[k] = v
	}

	return vars, nil
}

func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
