package jobs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httpClient "github.com/hellsoft/simplenotes/internal/client/api"
	"github.com/hellsoft/simplenotes/internal/client/storage"
	syncService "github.com/hellsoft/simplenotes/internal/client/sync"
	"github.com/hellsoft/simplenotes/internal/models"
	"github.com/hellsoft/simplenotes/pkg/api"
)

const (
	// maxSaveAttempts bounds save retries. On exhaustion the job is
	// parked: the note keeps its pending state so a later edit or a
	// manual sync re-enqueues the push. User content is never dropped
	// because the push kept failing.
	maxSaveAttempts = 10

	// maxDeleteAttempts bounds delete retries. On exhaustion the
	// local record is force-deleted so a note the user removed can't
	// haunt the device forever just because the server never
	// confirmed.
	maxDeleteAttempts = 10
)

// Worker implements the note job handlers. It holds no note content:
// every attempt re-reads current state from the store, so a job that
// was superseded by a newer edit pushes the newer edit.
type Worker struct {
	storage   storage.NoteStorage
	apiClient httpClient.ClientAPI
	reconcile syncService.Service
	logger    *slog.Logger
}

// NewWorker creates the job handlers.
func NewWorker(noteStorage storage.NoteStorage, apiClient httpClient.ClientAPI, reconcile syncService.Service, logger *slog.Logger) *Worker {
	return &Worker{
		storage:   noteStorage,
		apiClient: apiClient,
		reconcile: reconcile,
		logger:    logger,
	}
}

// Register installs all note handlers on the scheduler.
func (w *Worker) Register(s *Scheduler) {
	s.Register(KindSaveNote, w.SaveNote)
	s.Register(KindDeleteNote, w.DeleteNote)
	s.Register(KindSyncNotes, w.SyncNotes)
}

// SaveNote pushes the note identified by the job payload (a local ID)
// to the server, then records the server's acknowledgement locally.
func (w *Worker) SaveNote(ctx context.Context, job *Job) Result {
	note, err := w.storage.LoadByID(ctx, job.Payload)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			// The note was deleted while the job waited. Nothing to save.
			w.logger.Warn("Save job references a missing note, discarding", "local_id", job.Payload)
			return Fail
		}
		w.logger.Error("Failed to load note for save job", "local_id", job.Payload, "error", err)
		return Fail
	}

	w.logger.Debug("Saving note to backend", "local_id", note.ID, "server_id", note.ServerID)

	saved, err := w.apiClient.SaveNote(ctx, api.Note{
		ID:      note.ServerID,
		Title:   note.Title,
		Content: note.Content,
	})
	if err != nil {
		if job.Attempts > maxSaveAttempts {
			w.logger.Error("Parking save job after repeated failures; note stays pending",
				"local_id", note.ID,
				"attempts", job.Attempts,
				"error", err)
			return Fail
		}
		w.logger.Warn("Save attempt failed, will retry",
			"local_id", note.ID,
			"attempt", job.Attempts,
			"error", err)
		return Retry
	}

	_, err = w.storage.Upsert(ctx, &models.Note{
		ID:       note.ID,
		ServerID: saved.ID,
		Title:    saved.Title,
		Content:  saved.Content,
		State:    models.StateDefault,
	})
	if err != nil {
		// The push landed but the acknowledgement didn't stick. The
		// note stays pending; saving again is idempotent server-side.
		w.logger.Error("Failed to record save acknowledgement", "local_id", note.ID, "error", err)
		return Retry
	}

	w.logger.Info("Note saved to backend", "local_id", note.ID, "server_id", saved.ID)
	return Done
}

// DeleteNote confirms a local deletion with the server. The payload is
// the server ID of the note being removed.
func (w *Worker) DeleteNote(ctx context.Context, job *Job) Result {
	serverID := job.Payload

	if job.Attempts > maxDeleteAttempts {
		// Bounded-retry escape hatch: drop the zombie regardless of
		// server confirmation.
		w.logger.Warn("Delete retries exhausted, force-deleting local record",
			"server_id", serverID,
			"attempts", job.Attempts)
		if err := w.storage.DeleteByServerID(ctx, serverID); err != nil {
			w.logger.Error("Failed to force-delete note", "server_id", serverID, "error", err)
			return Fail
		}
		return Done
	}

	w.logger.Debug("Deleting note on backend", "server_id", serverID, "attempt", job.Attempts)

	if err := w.apiClient.DeleteNote(ctx, serverID); err != nil {
		if se, ok := httpClient.AsServerError(err); ok {
			if se.StatusCode == http.StatusNotFound {
				// Already gone on the server; finish the local half.
				return w.deleteLocal(ctx, serverID)
			}
			w.logger.Error("Delete rejected by server", "server_id", serverID, "status", se.StatusCode)
			return Fail
		}
		w.logger.Warn("Delete attempt failed, will retry",
			"server_id", serverID,
			"attempt", job.Attempts,
			"error", err)
		return Retry
	}

	return w.deleteLocal(ctx, serverID)
}

func (w *Worker) deleteLocal(ctx context.Context, serverID int64) Result {
	if err := w.storage.DeleteByServerID(ctx, serverID); err != nil {
		w.logger.Error("Failed to delete local note", "server_id", serverID, "error", err)
		return Retry
	}

	w.logger.Info("Note deleted", "server_id", serverID)
	return Done
}

// SyncNotes pulls the full server snapshot and reconciles it into the
// local store. Fetch failures retry; reconciliation itself does not
// fail per-note.
func (w *Worker) SyncNotes(ctx context.Context, job *Job) Result {
	result, err := w.reconcile.Sync(ctx)
	if err != nil {
		w.logger.Warn("Periodic sync failed, will retry", "attempt", job.Attempts, "error", err)
		return Retry
	}

	w.logger.Info("Periodic sync completed",
		"upserted", result.Upserted,
		"deleted", result.Deleted,
		"skipped", result.Skipped)
	return Done
}
