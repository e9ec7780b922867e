package redis

import "time"

// Config describes the Redis connection. An empty ConnectionURL disables
// Redis-backed components.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                                // e.g. "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`      // connection attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`     // pause between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`   // overall deadline for Connect
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"tailoring"` // namespace for keys written by this service
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
