package storage

import "errors"

// Common client storage errors
var (
	// ErrNoteNotFound indicates that the note was not found
	ErrNoteNotFound = errors.New("note not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
