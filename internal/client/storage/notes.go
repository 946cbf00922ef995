package storage

import (
	"context"

	"github.com/hellsoft/simplenotes/internal/models"
)

// NoteStorage defines the interface for the local note store.
// Implementations own the canonical local record; callers never cache
// note content across operations.
type NoteStorage interface {
	// LoadActive returns all notes except those in Deleting state,
	// ordered by local ID. This is the user-facing list.
	LoadActive(ctx context.Context) ([]*models.Note, error)

	// LoadAll returns every note regardless of state, ordered by
	// local ID. Used by the reconciler's full scan.
	LoadAll(ctx context.Context) ([]*models.Note, error)

	// LoadByID retrieves a note by local ID.
	// Returns ErrNoteNotFound if the note doesn't exist.
	LoadByID(ctx context.Context, id int64) (*models.Note, error)

	// LoadByServerID retrieves a note by server ID.
	// Returns ErrNoteNotFound if the note doesn't exist.
	LoadByServerID(ctx context.Context, serverID int64) (*models.Note, error)

	// Upsert inserts or replaces a note. A note with ID 0 is inserted
	// and assigned a fresh local ID, which is returned. Replacing on
	// conflict makes retried upserts safe.
	Upsert(ctx context.Context, note *models.Note) (int64, error)

	// UpsertBatch inserts or replaces all notes in one transaction.
	UpsertBatch(ctx context.Context, notes []*models.Note) error

	// DeleteByID removes a note by local ID. Missing notes are not an error.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteByServerID removes a note by server ID. Missing notes are
	// not an error.
	DeleteByServerID(ctx context.Context, serverID int64) error

	// DeleteBatch removes all notes with the given local IDs in one
	// transaction.
	DeleteBatch(ctx context.Context, ids []int64) error
}
