// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional dotenv files) and
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each parsed
// configuration type for the lifetime of the process.
//
// # Usage
//
//	type Config struct {
//		Addr        string `env:"HTTP_ADDR" envDefault:":8080"`
//		TenantsFile string `env:"TENANTS_FILE" envDefault:"tenants.yaml"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg, config.WithPrefix("TAILORING_"))
//
// # Error Handling
//
//   - ErrNilPointer: Load was called with a nil pointer
//   - ErrParsingConfig: env parsing failed (missing required value, bad type);
//     the underlying error is joined and the type is not cached
package config
