package repository

import "errors"

// ErrNotFound marks lookups for rows that do not exist or are soft-deleted.
// Callers test for it with errors.Is.
var ErrNotFound = errors.New("not found")
