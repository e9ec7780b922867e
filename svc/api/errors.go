package api

import "errors"

var (
	ErrBadRequest           = errors.New("malformed request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNoTenant             = errors.New("no implementation for tenant")
)
