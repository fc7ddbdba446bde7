package databaseerrors

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict means the entry changed since the caller read it.
	ErrConflict = errors.New("revision conflict")
)
