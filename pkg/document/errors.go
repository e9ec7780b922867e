package document

import "errors"

var (
	ErrGeneration        = errors.New("document generation failed")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrDanglingReference = errors.New("dangling drd reference")
	ErrConvert           = errors.New("document conversion failed")
	ErrInvalidConfig     = errors.New("invalid document configuration")
)
