package config

import (
	"errors"
)

// Sentinels wrapped by Load so callers can errors.Is on the failure kind.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
