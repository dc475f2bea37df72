// Package store contains the persistence layer. Every query is scoped to
// an owning user; no unscoped lookup path is exposed.
package store

import "errors"

var (
	// ErrNotFound covers both "no such row" and "row owned by someone
	// else" so callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail = errors.New("email already registered")
)
