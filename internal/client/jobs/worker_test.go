package jobs

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/hellsoft/simplenotes/internal/client/api"
	"github.com/hellsoft/simplenotes/internal/client/storage"
	"github.com/hellsoft/simplenotes/internal/client/storage/sqlite"
	syncService "github.com/hellsoft/simplenotes/internal/client/sync"
	"github.com/hellsoft/simplenotes/internal/models"
	"github.com/hellsoft/simplenotes/pkg/api"
)

func newTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	s, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestSaveNoteJob_RoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// A freshly created, never-synced note.
	localID, err := store.Upsert(ctx, &models.Note{Title: "draft", Content: "text", State: models.StateCreated})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		SaveNoteFunc: func(ctx context.Context, note api.Note) (*api.Note, error) {
			assert.Zero(t, note.ID, "a never-synced note is pushed without a server ID")
			return &api.Note{ID: 42, Title: note.Title, Content: note.Content}, nil
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	result := worker.SaveNote(ctx, &Job{Kind: KindSaveNote, Payload: localID, Attempts: 1})
	assert.Equal(t, Done, result)

	note, err := store.LoadByID(ctx, localID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), note.ServerID)
	assert.Equal(t, models.StateDefault, note.State)
}

func TestSaveNoteJob_MissingNoteFailsPermanently(t *testing.T) {
	store := newTestStorage(t)

	mockAPI := &httpClient.ClientAPIMock{}
	worker := NewWorker(store, mockAPI, nil, testLogger())

	result := worker.SaveNote(context.Background(), &Job{Kind: KindSaveNote, Payload: 999, Attempts: 1})
	assert.Equal(t, Fail, result)
	assert.Empty(t, mockAPI.SaveNoteCalls(), "nothing to save, nothing to push")
}

func TestSaveNoteJob_TransientErrorRetries(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	localID, err := store.Upsert(ctx, &models.Note{Title: "draft", State: models.StateCreated})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		SaveNoteFunc: func(ctx context.Context, note api.Note) (*api.Note, error) {
			return nil, &httpClient.TransientError{Err: context.DeadlineExceeded}
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	result := worker.SaveNote(ctx, &Job{Kind: KindSaveNote, Payload: localID, Attempts: 1})
	assert.Equal(t, Retry, result)

	// The note keeps its pending state until a push lands.
	note, err := store.LoadByID(ctx, localID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCreated, note.State)
}

func TestSaveNoteJob_ParksAfterCeiling(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	localID, err := store.Upsert(ctx, &models.Note{Title: "stubborn", State: models.StateUpdating})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		SaveNoteFunc: func(ctx context.Context, note api.Note) (*api.Note, error) {
			return nil, &httpClient.TransientError{Err: context.DeadlineExceeded}
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	result := worker.SaveNote(ctx, &Job{Kind: KindSaveNote, Payload: localID, Attempts: maxSaveAttempts + 1})
	assert.Equal(t, Fail, result)

	// Parked, not destroyed: the note and its edits survive.
	note, err := store.LoadByID(ctx, localID)
	require.NoError(t, err)
	assert.Equal(t, "stubborn", note.Title)
	assert.Equal(t, models.StateUpdating, note.State)
}

func TestDeleteNoteJob_Success(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, &models.Note{ServerID: 5, Title: "bye", State: models.StateDeleting})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		DeleteNoteFunc: func(ctx context.Context, id int64) error {
			assert.Equal(t, int64(5), id)
			return nil
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	result := worker.DeleteNote(ctx, &Job{Kind: KindDeleteNote, Payload: 5, Attempts: 1})
	assert.Equal(t, Done, result)

	_, err = store.LoadByServerID(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
}

func TestDeleteNoteJob_404MeansAlreadyGone(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, &models.Note{ServerID: 6, Title: "bye", State: models.StateDeleting})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		DeleteNoteFunc: func(ctx context.Context, id int64) error {
			return &httpClient.ServerError{StatusCode: http.StatusNotFound, Message: "no such note"}
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	// Succeeds and removes the local record on the very first attempt.
	result := worker.DeleteNote(ctx, &Job{Kind: KindDeleteNote, Payload: 6, Attempts: 1})
	assert.Equal(t, Done, result)

	_, err = store.LoadByServerID(ctx, 6)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
	assert.Len(t, mockAPI.DeleteNoteCalls(), 1)
}

func TestDeleteNoteJob_ServerErrorFailsAttempt(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, &models.Note{ServerID: 7, Title: "bye", State: models.StateDeleting})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		DeleteNoteFunc: func(ctx context.Context, id int64) error {
			return &httpClient.ServerError{StatusCode: http.StatusForbidden}
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	result := worker.DeleteNote(ctx, &Job{Kind: KindDeleteNote, Payload: 7, Attempts: 1})
	assert.Equal(t, Fail, result)

	// The local record is untouched: this wasn't a confirmation.
	_, err = store.LoadByServerID(ctx, 7)
	assert.NoError(t, err)
}

func TestDeleteNoteJob_ForceDeletesAfterRetryCeiling(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, &models.Note{ServerID: 8, Title: "zombie", State: models.StateDeleting})
	require.NoError(t, err)

	mockAPI := &httpClient.ClientAPIMock{
		DeleteNoteFunc: func(ctx context.Context, id int64) error {
			return &httpClient.TransientError{Err: context.DeadlineExceeded}
		},
	}

	worker := NewWorker(store, mockAPI, nil, testLogger())

	// Drive the job the way the scheduler would: attempts increment
	// per run, transient failures retry.
	var result Result
	attempts := 0
	for {
		attempts++
		result = worker.DeleteNote(ctx, &Job{Kind: KindDeleteNote, Payload: 8, Attempts: attempts})
		if result != Retry {
			break
		}
	}

	assert.Equal(t, Done, result)
	assert.Equal(t, maxDeleteAttempts+1, attempts, "the escape hatch fires once the ceiling is exceeded")
	assert.Len(t, mockAPI.DeleteNoteCalls(), maxDeleteAttempts, "the final attempt skips the network")

	_, err = store.LoadByServerID(ctx, 8)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound, "the zombie is gone regardless of the server")
}

func TestSyncNotesJob(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	mockAPI := &httpClient.ClientAPIMock{
		FetchNotesFunc: func(ctx context.Context) ([]api.Note, error) {
			return []api.Note{{ID: 1, Title: "from server"}}, nil
		},
	}
	reconciler := syncService.NewService(mockAPI, store, testLogger())

	worker := NewWorker(store, mockAPI, reconciler, testLogger())

	result := worker.SyncNotes(ctx, &Job{Kind: KindSyncNotes, Attempts: 1})
	assert.Equal(t, Done, result)

	notes, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ServerID)
}

func TestSyncNotesJob_FetchFailureRetries(t *testing.T) {
	store := newTestStorage(t)

	mockAPI := &httpClient.ClientAPIMock{
		FetchNotesFunc: func(ctx context.Context) ([]api.Note, error) {
			return nil, &httpClient.TransientError{Err: context.DeadlineExceeded}
		},
	}
	reconciler := syncService.NewService(mockAPI, store, testLogger())

	worker := NewWorker(store, mockAPI, reconciler, testLogger())

	result := worker.SyncNotes(context.Background(), &Job{Kind: KindSyncNotes, Attempts: 1})
	assert.Equal(t, Retry, result)
}
