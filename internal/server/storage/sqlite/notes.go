package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hellsoft/simplenotes/internal/server/storage"
)

// List returns all notes ordered by ID.
func (s *Storage) List(ctx context.Context) ([]*storage.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, updated_at FROM server_note ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*storage.Note
	for rows.Next() {
		var note storage.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// Get returns a note by ID.
func (s *Storage) Get(ctx context.Context, id int64) (*storage.Note, error) {
	var note storage.Note
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, updated_at FROM server_note WHERE id = ?`, id).
		Scan(&note.ID, &note.Title, &note.Content, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// Save persists the note. ID 0 inserts and assigns an ID.
func (s *Storage) Save(ctx context.Context, note *storage.Note) (*storage.Note, error) {
	stored := *note
	stored.UpdatedAt = time.Now().UTC()

	if stored.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO server_note (title, content, updated_at) VALUES (?, ?, ?)`,
			stored.Title, stored.Content, stored.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert note: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get inserted note id: %w", err)
		}
		stored.ID = id
		return &stored, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO server_note (id, title, content, updated_at) VALUES (?, ?, ?, ?)`,
		stored.ID, stored.Title, stored.Content, stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	return &stored, nil
}

// Delete removes a note by ID.
func (s *Storage) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM server_note WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNoteNotFound
	}

	return nil
}
