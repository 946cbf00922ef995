package storage

import "errors"

// ErrNoteNotFound is returned when the requested note does not exist.
var ErrNoteNotFound = errors.New("note not found")
