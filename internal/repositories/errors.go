package repositories

import "errors"

// ErrNotFound is returned by lookups when no record matches. Callers that
// need to distinguish "missing" from a store failure check it with errors.Is.
var ErrNotFound = errors.New("record not found")
