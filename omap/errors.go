package omap

import "github.com/pkg/errors"

var (
	// ErrKeyNotFound is returned when an operation requires a key that is not in the map.
	ErrKeyNotFound = errors.New("key not found")
	// ErrOutOfRange is returned for a slot outside [0, Len).
	ErrOutOfRange = errors.New("slot out of range")
	// ErrKeyConflict is returned when a key change would overwrite another entry.
	ErrKeyConflict = errors.New("key already exists")
	ErrReleased    = errors.New("map used after release")
	ErrCorrupt     = errors.New("map index corrupt")
)
