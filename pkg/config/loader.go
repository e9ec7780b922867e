package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option tunes a single Load call.
type Option func(*options)

type options struct {
	prefix   string
	envFiles []string
}

// WithPrefix prepends prefix to every env tag of the struct (e.g. "TAILORING_").
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles loads the given dotenv files instead of the default ".env".
// Missing files are ignored; variables already set in the process win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu    sync.Mutex
	cache = map[string]*entry{}

	envMu     sync.Mutex
	envLoaded = map[string]bool{}
)

// Load parses environment variables into v. Each configuration type (and
// prefix) is parsed once per process; later calls receive the cached copy.
//
// Example:
//
//	type Config struct {
//		Addr         string `env:"HTTP_ADDR" envDefault:":8080"`
//		TemplateHome string `env:"TEMPLATE_HOME,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}
	loadEnvFiles(o.envFiles)

	key := cacheKey[T](o.prefix)

	mu.Lock()
	e, ok := cache[key]
	if !ok {
		e = &entry{}
		cache[key] = e
	}
	mu.Unlock()

	e.once.Do(func() {
		var parsed T
		if err := env.ParseWithOptions(&parsed, env.Options{Prefix: o.prefix}); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		// Drop the failed entry so a corrected environment can be retried.
		mu.Lock()
		if cache[key] == e {
			delete(cache, key)
		}
		mu.Unlock()
		return e.err
	}

	cached, ok := e.value.(T)
	if !ok {
		return ErrInvalidConfigType
	}
	*v = cached
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset clears the configuration cache. Intended for tests.
func Reset() {
	mu.Lock()
	cache = map[string]*entry{}
	mu.Unlock()
}

func loadEnvFiles(files []string) {
	envMu.Lock()
	defer envMu.Unlock()
	for _, f := range files {
		if envLoaded[f] {
			continue
		}
		envLoaded[f] = true
		// The file is optional.
		_ = godotenv.Load(f)
	}
}

func cacheKey[T any](prefix string) string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.PkgPath() + "." + t.String() + "|" + prefix
}
