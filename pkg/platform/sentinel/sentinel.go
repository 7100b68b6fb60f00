package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these
// (optionally wrapped) so callers can translate them into domain errors.
//
// ErrNotFound states that an entity does not exist (an empty credential
// slot, a missing remote resource); it is a factual state, not a
// validation failure. For validation errors use pkg/domain-errors
// directly.
var ErrNotFound = errors.New("not found")
