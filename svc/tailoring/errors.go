package tailoring

import "errors"

var (
	ErrDefinitions     = errors.New("invalid tenant definitions")
	ErrDuplicateTenant = errors.New("duplicate tenant")
	ErrMissingPDF      = errors.New("pdf output requires a pdf converter")
	ErrMissingLocks    = errors.New("lock policy requires a lock store")
	ErrMissingEngine   = errors.New("template engine is required")
	ErrInvalidResolver = errors.New("invalid tenant resolver")
)
