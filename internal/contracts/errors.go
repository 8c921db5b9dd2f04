package contracts

import "errors"

var (
	// ErrInvalidViewMode is returned for a view mode other than daily or per-trade
	ErrInvalidViewMode = errors.New("invalid view mode")

	// ErrInvalidFilter is returned for malformed or inverted filters
	ErrInvalidFilter = errors.New("invalid trade filter")

	// ErrSourceUnavailable wraps failures of the upstream trade source
	ErrSourceUnavailable = errors.New("trade source unavailable")
)
