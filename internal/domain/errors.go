package domain

import "errors"

// Sentinel errors shared by the gateway, the services and the HTTP layer.
// Storage code wraps them with context; handlers match them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
