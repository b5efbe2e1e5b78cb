package progress

import "errors"

// Sentinel kinds for progress errors.
var (
	ErrOutOfRange = errors.New("step index out of range")
)
