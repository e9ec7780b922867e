package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrMissingVersion       = errors.New("catalog version is empty")
	ErrMissingRequirementID = errors.New("requirement without id")
	ErrDuplicateRequirement = errors.New("duplicate requirement id")
)

// DuplicateRequirementError names the repeated requirement id.
type DuplicateRequirementError struct {
	ID string
}

func (e *DuplicateRequirementError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateRequirement, e.ID)
}

func (e *DuplicateRequirementError) Unwrap() error { return ErrDuplicateRequirement }
