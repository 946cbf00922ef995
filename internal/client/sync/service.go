// Package sync implements the reconciler that folds a server snapshot
// into the local note store.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpClient "github.com/hellsoft/simplenotes/internal/client/api"
	"github.com/hellsoft/simplenotes/internal/client/storage"
	"github.com/hellsoft/simplenotes/internal/models"
	"github.com/hellsoft/simplenotes/pkg/api"
)

// deleteBatchSize bounds the number of IDs per delete statement. Keeps
// the IN clause within SQLite's practical limits and bounds lock time.
const deleteBatchSize = 100

// Service defines the interface for the notes reconciler.
type Service interface {
	// Sync fetches the full server snapshot and reconciles it into
	// the local store.
	Sync(ctx context.Context) (*SyncResult, error)

	// SyncNotes reconciles an already-fetched server snapshot into
	// the local store.
	SyncNotes(ctx context.Context, serverNotes []api.Note) (*SyncResult, error)
}

type service struct {
	apiClient httpClient.ClientAPI
	storage   storage.NoteStorage
	logger    *slog.Logger
}

// NewService creates a new reconciler.
func NewService(apiClient httpClient.ClientAPI, noteStorage storage.NoteStorage, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		storage:   noteStorage,
		logger:    logger,
	}
}

// SyncResult contains reconciliation counters.
type SyncResult struct {
	Upserted int // notes inserted or refreshed from the server snapshot
	Deleted  int // fully-synced notes removed because the server no longer has them
	Skipped  int // notes left alone: pending local changes, or malformed server entries
}

// Sync fetches the full server snapshot and reconciles it.
func (s *service) Sync(ctx context.Context) (*SyncResult, error) {
	serverNotes, err := s.apiClient.FetchNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server snapshot: %w", err)
	}

	return s.SyncNotes(ctx, serverNotes)
}

// SyncNotes folds a server snapshot into local state without touching
// notes that carry pending local changes.
//
// Pass order is fixed: all inserts/updates are applied before any
// deletion, so a note that changed identity server-side is never
// removed before its replacement has been considered. Running the same
// snapshot twice is a no-op on the second run.
func (s *service) SyncNotes(ctx context.Context, serverNotes []api.Note) (*SyncResult, error) {
	s.logger.Info("Starting notes reconciliation", "server_notes", len(serverNotes))

	result := &SyncResult{}

	// Stage upserts for every server note that has no pending local edit.
	seen := make(map[int64]struct{}, len(serverNotes))
	staged := make([]*models.Note, 0, len(serverNotes))

	for _, serverNote := range serverNotes {
		if serverNote.ID <= 0 {
			// A malformed entry skips, not aborts: one bad note must
			// not block the rest of the snapshot.
			s.logger.Warn("Skipping malformed server note", "server_id", serverNote.ID)
			result.Skipped++
			continue
		}

		seen[serverNote.ID] = struct{}{}

		existing, err := s.storage.LoadByServerID(ctx, serverNote.ID)
		if err != nil && !errors.Is(err, storage.ErrNoteNotFound) {
			return nil, fmt.Errorf("failed to look up note by server id %d: %w", serverNote.ID, err)
		}

		if existing != nil && existing.State != models.StateDefault {
			// Pending local intent wins over the server snapshot.
			s.logger.Debug("Skipping note with pending local change",
				"server_id", serverNote.ID,
				"state", existing.State)
			result.Skipped++
			continue
		}

		var localID int64
		if existing != nil {
			localID = existing.ID
		}

		staged = append(staged, &models.Note{
			ID:       localID,
			ServerID: serverNote.ID,
			Title:    serverNote.Title,
			Content:  serverNote.Content,
			State:    models.StateDefault,
		})
	}

	if err := s.storage.UpsertBatch(ctx, staged); err != nil {
		return nil, fmt.Errorf("failed to apply staged upserts: %w", err)
	}
	result.Upserted = len(staged)

	// The server is authoritative for existence once a note is fully
	// synced: remove every Default note missing from the snapshot.
	// Notes in Created/Updating/Deleting are someone else's business.
	all, err := s.storage.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load local notes: %w", err)
	}

	var doomed []int64
	for _, note := range all {
		if note.State != models.StateDefault {
			continue
		}
		if _, ok := seen[note.ServerID]; !ok {
			doomed = append(doomed, note.ID)
		}
	}

	for start := 0; start < len(doomed); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(doomed))
		if err := s.storage.DeleteBatch(ctx, doomed[start:end]); err != nil {
			return nil, fmt.Errorf("failed to delete stale notes: %w", err)
		}
	}
	result.Deleted = len(doomed)

	s.logger.Info("Reconciliation completed",
		"upserted", result.Upserted,
		"deleted", result.Deleted,
		"skipped", result.Skipped)

	return result, nil
}
