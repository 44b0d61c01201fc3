package services

import "errors"

// Sentinel errors raised by the lifecycle service. Handlers translate them
// to HTTP status codes; a mutation that hits one is aborted entirely with
// no partial persistence and no notification dispatch.
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrContentNotFound  = errors.New("content not found")
	ErrNotAuthorized    = errors.New("you are not authorized to modify content for this business")
)
