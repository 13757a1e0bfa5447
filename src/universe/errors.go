package universe

import "errors"

var (
	ErrInvalidDimension  = errors.New("invalid grid dimension")
	ErrInvalidDensity    = errors.New("density must be within [0, 1]")
	ErrInvalidChunkSize  = errors.New("chunk size must be at least 1")
	ErrDimensionMismatch = errors.New("grid dimensions do not match")
)
