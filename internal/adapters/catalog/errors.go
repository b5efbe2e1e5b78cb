package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrCatalogLoad = errors.New("catalog load failed")
)
