package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis is not ready")
	ErrEmptyConnectionURL           = errors.New("empty redis connection url")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
