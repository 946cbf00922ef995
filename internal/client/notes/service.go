// Package notes implements the user-facing note operations: optimistic
// local writes paired with background jobs that carry the change to
// the server.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hellsoft/simplenotes/internal/client/jobs"
	"github.com/hellsoft/simplenotes/internal/client/storage"
	"github.com/hellsoft/simplenotes/internal/models"
)

//go:generate moq -out scheduler_mock.go . Scheduler

// Scheduler is the slice of the job scheduler this service needs.
type Scheduler interface {
	// EnqueueUnique stores a one-shot job, replacing any pending job
	// with the same key.
	EnqueueUnique(ctx context.Context, key string, kind jobs.Kind, payload int64) error

	// EnqueueUniquePeriodic stores a recurring job, replacing the
	// existing schedule under the same name.
	EnqueueUniquePeriodic(ctx context.Context, name string, kind jobs.Kind, interval time.Duration) error
}

// Service orchestrates note operations. Every mutation is two-phase:
// the local write and job enqueue complete synchronously (or the whole
// operation errors); the push to the server happens later, at least
// once, reading fresh state. Remote failures never surface here.
type Service struct {
	storage   storage.NoteStorage
	scheduler Scheduler
	logger    *slog.Logger
}

// NewService creates the note service.
func NewService(noteStorage storage.NoteStorage, scheduler Scheduler, logger *slog.Logger) *Service {
	return &Service{
		storage:   noteStorage,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Notes returns the user-facing note list. Notes pending deletion are
// already confirmed gone from the user's point of view and are hidden.
func (s *Service) Notes(ctx context.Context) ([]*models.Note, error) {
	return s.storage.LoadActive(ctx)
}

// LoadNote returns a note by local ID, or nil if it doesn't exist.
func (s *Service) LoadNote(ctx context.Context, id int64) (*models.Note, error) {
	note, err := s.storage.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return note, nil
}

// SaveNote persists the note locally and schedules the push. A note
// without a local ID is new and enters Created; an existing note
// enters Updating. The returned ID is the note's local ID.
func (s *Service) SaveNote(ctx context.Context, note *models.Note) (int64, error) {
	staged := note.Clone()
	if staged.ID == 0 {
		staged.State = models.StateCreated
	} else {
		staged.State = models.StateUpdating
	}

	id, err := s.storage.Upsert(ctx, staged)
	if err != nil {
		return 0, fmt.Errorf("failed to persist note: %w", err)
	}

	if err := s.scheduler.EnqueueUnique(ctx, jobs.SaveKey(id), jobs.KindSaveNote, id); err != nil {
		return 0, fmt.Errorf("failed to schedule save: %w", err)
	}

	s.logger.Debug("Note staged for save", "local_id", id, "state", staged.State)
	return id, nil
}

// DeleteNote removes the note. A note the server has never
// acknowledged is deleted locally and that's the end of it; a synced
// note is marked Deleting and a delete job carries the news.
func (s *Service) DeleteNote(ctx context.Context, note *models.Note) error {
	if !note.Synced() {
		if err := s.storage.DeleteByID(ctx, note.ID); err != nil {
			return fmt.Errorf("failed to delete local-only note: %w", err)
		}
		s.logger.Debug("Deleted never-synced note locally", "local_id", note.ID)
		return nil
	}

	staged := note.Clone()
	staged.State = models.StateDeleting
	if _, err := s.storage.Upsert(ctx, staged); err != nil {
		return fmt.Errorf("failed to mark note for deletion: %w", err)
	}

	if err := s.scheduler.EnqueueUnique(ctx, jobs.DeleteKey(note.ServerID), jobs.KindDeleteNote, note.ServerID); err != nil {
		return fmt.Errorf("failed to schedule delete: %w", err)
	}

	s.logger.Debug("Note staged for delete", "local_id", note.ID, "server_id", note.ServerID)
	return nil
}

// RequestSync (re)schedules the periodic sync so the next pass runs
// immediately — the pull-to-refresh path.
func (s *Service) RequestSync(ctx context.Context) error {
	if err := s.scheduler.EnqueueUniquePeriodic(ctx, jobs.PeriodicSyncName, jobs.KindSyncNotes, jobs.DefaultSyncInterval); err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}
	return nil
}
