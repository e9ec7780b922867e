package editability

import "errors"

var (
	ErrInvalidKey       = errors.New("project and tailoring are required")
	ErrStoreUnavailable = errors.New("lock store unavailable")
)
