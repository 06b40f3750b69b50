package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and the snapshot holder
// return these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: entity or cache entry does not exist
//   - ErrUnavailable: backing service or snapshot temporarily unavailable
//   - ErrInvalidState: component used before it was ready
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
