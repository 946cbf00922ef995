package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hellsoft/simplenotes/internal/client/storage"
	"github.com/hellsoft/simplenotes/internal/models"
)

// LoadActive returns all notes except those pending deletion, ordered
// by local ID. Notes in Deleting state stay in the table until the
// delete job confirms removal but are hidden from list consumers.
func (s *Storage) LoadActive(ctx context.Context) ([]*models.Note, error) {
	query := `
		SELECT id, server_id, title, content, state
		FROM note
		WHERE state != ?
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, models.StateDeleting.Code())
	if err != nil {
		return nil, fmt.Errorf("failed to query active notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanNotes(rows)
}

// LoadAll returns every note regardless of state, ordered by local ID.
func (s *Storage) LoadAll(ctx context.Context) ([]*models.Note, error) {
	query := `
		SELECT id, server_id, title, content, state
		FROM note
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanNotes(rows)
}

// LoadByID retrieves a single note by local ID.
// Returns storage.ErrNoteNotFound if the note doesn't exist.
func (s *Storage) LoadByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `
		SELECT id, server_id, title, content, state
		FROM note
		WHERE id = ?
	`

	return s.loadOne(ctx, query, id)
}

// LoadByServerID retrieves a single note by server ID.
// Returns storage.ErrNoteNotFound if the note doesn't exist.
func (s *Storage) LoadByServerID(ctx context.Context, serverID int64) (*models.Note, error) {
	query := `
		SELECT id, server_id, title, content, state
		FROM note
		WHERE server_id = ?
	`

	return s.loadOne(ctx, query, serverID)
}

func (s *Storage) loadOne(ctx context.Context, query string, arg int64) (*models.Note, error) {
	note := &models.Note{}
	var stateCode int

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&note.ID,
		&note.ServerID,
		&note.Title,
		&note.Content,
		&stateCode,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	state, err := models.StateFromCode(stateCode)
	if err != nil {
		return nil, fmt.Errorf("corrupt note row %d: %w", note.ID, err)
	}
	note.State = state

	return note, nil
}

// Upsert inserts or replaces a note. A note with ID 0 gets a fresh
// local ID from the autoincrement column; the assigned ID is returned.
func (s *Storage) Upsert(ctx context.Context, note *models.Note) (int64, error) {
	id, err := upsertNote(ctx, s.db, note)
	if err != nil {
		return 0, err
	}

	s.notifyChange()
	return id, nil
}

// UpsertBatch inserts or replaces all notes in one transaction.
func (s *Storage) UpsertBatch(ctx context.Context, notes []*models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, note := range notes {
		if _, err := upsertNote(ctx, tx, note); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch upsert: %w", err)
	}

	s.notifyChange()
	return nil
}

// execer covers *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertNote(ctx context.Context, db execer, note *models.Note) (int64, error) {
	if note.ID == 0 {
		query := `
			INSERT INTO note (server_id, title, content, state)
			VALUES (?, ?, ?, ?)
		`

		result, err := db.ExecContext(ctx, query,
			note.ServerID,
			note.Title,
			note.Content,
			note.State.Code(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert note: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted note id: %w", err)
		}
		return id, nil
	}

	// Replace on primary-key conflict so retried upserts are safe.
	query := `
		INSERT OR REPLACE INTO note (id, server_id, title, content, state)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		note.ID,
		note.ServerID,
		note.Title,
		note.Content,
		note.State.Code(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert note %d: %w", note.ID, err)
	}

	return note.ID, nil
}

// DeleteByID removes a note by local ID. Deleting a missing note is a no-op.
func (s *Storage) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM note WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}

	s.notifyChange()
	return nil
}

// DeleteByServerID removes a note by server ID. Deleting a missing
// note is a no-op.
func (s *Storage) DeleteByServerID(ctx context.Context, serverID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM note WHERE server_id = ?`, serverID); err != nil {
		return fmt.Errorf("failed to delete note by server id %d: %w", serverID, err)
	}

	s.notifyChange()
	return nil
}

// DeleteBatch removes all notes with the given local IDs in one
// transaction. Callers are responsible for keeping the ID list within
// SQLite's practical IN-clause limits.
func (s *Storage) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`DELETE FROM note WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete %d notes: %w", len(ids), err)
	}

	s.notifyChange()
	return nil
}

// scanNotes reads note rows into models.
func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	var notes []*models.Note

	for rows.Next() {
		note := &models.Note{}
		var stateCode int

		err := rows.Scan(
			&note.ID,
			&note.ServerID,
			&note.Title,
			&note.Content,
			&stateCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		state, err := models.StateFromCode(stateCode)
		if err != nil {
			return nil, fmt.Errorf("corrupt note row %d: %w", note.ID, err)
		}
		note.State = state

		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return notes, nil
}
