// Package storage defines the server-side note store contract.
package storage

import (
	"context"
	"time"
)

// Note is a server-side note record.
type Note struct {
	ID        int64
	Title     string
	Content   string
	UpdatedAt time.Time
}

// NoteStorage stores the server's notes.
type NoteStorage interface {
	// List returns all notes ordered by ID.
	List(ctx context.Context) ([]*Note, error)

	// Get returns a note by ID. Returns ErrNoteNotFound if missing.
	Get(ctx context.Context, id int64) (*Note, error)

	// Save persists the note. ID 0 creates a new note and assigns an
	// ID; a nonzero ID overwrites the existing record or creates it at
	// that ID. Returns the stored note.
	Save(ctx context.Context, note *Note) (*Note, error)

	// Delete removes a note by ID. Returns ErrNoteNotFound if the note
	// does not exist.
	Delete(ctx context.Context, id int64) error
}
