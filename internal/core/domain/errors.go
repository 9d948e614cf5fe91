package domain

import "errors"

// ErrNotFound indicates a lookup by id matched nothing. Callers treat it as
// "no contribution", never as a fatal condition.
var ErrNotFound = errors.New("domain: not found")

// ErrInvalidAgent wraps construction-time validation failures for agents.
var ErrInvalidAgent = errors.New("domain: invalid agent")
