// Package redis connects the service to Redis.
//
// Connect parses a redis:// URL and pings the server with retries; the
// resulting client backs the editability lock store. Healthcheck adapts a
// client into a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	probe := redis.Healthcheck(client)
//
// Config is populated from REDIS_* environment variables with pkg/config.
package redis
