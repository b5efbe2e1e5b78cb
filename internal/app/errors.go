package service

import "errors"

// Service errors.
var (
	// ErrEmptyCatalog is returned when a recommendation request names a
	// skill domain with no reference profiles.
	ErrEmptyCatalog = errors.New("no reference profiles for skill domain")
)
