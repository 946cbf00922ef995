package notes

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellsoft/simplenotes/internal/client/jobs"
	"github.com/hellsoft/simplenotes/internal/client/storage"
	"github.com/hellsoft/simplenotes/internal/client/storage/sqlite"
	"github.com/hellsoft/simplenotes/internal/models"
)

func newTestService(t *testing.T) (*Service, *sqlite.Storage, *SchedulerMock) {
	t.Helper()

	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	scheduler := &SchedulerMock{
		EnqueueUniqueFunc: func(ctx context.Context, key string, kind jobs.Kind, payload int64) error {
			return nil
		},
		EnqueueUniquePeriodicFunc: func(ctx context.Context, name string, kind jobs.Kind, interval time.Duration) error {
			return nil
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(store, scheduler, logger), store, scheduler
}

func TestSaveNote_NewNoteIsCreatedAndScheduled(t *testing.T) {
	service, store, scheduler := newTestService(t)
	ctx := context.Background()

	id, err := service.SaveNote(ctx, &models.Note{Title: "new", Content: "text"})
	require.NoError(t, err)
	require.Positive(t, id)

	note, err := store.LoadByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateCreated, note.State)
	assert.Zero(t, note.ServerID)

	calls := scheduler.EnqueueUniqueCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, jobs.SaveKey(id), calls[0].Key)
	assert.Equal(t, jobs.KindSaveNote, calls[0].Kind)
	assert.Equal(t, id, calls[0].Payload)
}

func TestSaveNote_ExistingNoteIsUpdating(t *testing.T) {
	service, store, scheduler := newTestService(t)
	ctx := context.Background()

	id, err := store.Upsert(ctx, &models.Note{ServerID: 42, Title: "old", State: models.StateDefault})
	require.NoError(t, err)

	gotID, err := service.SaveNote(ctx, &models.Note{ID: id, ServerID: 42, Title: "edited"})
	require.NoError(t, err)
	assert.Equal(t, id, gotID)

	note, err := store.LoadByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateUpdating, note.State)
	assert.Equal(t, "edited", note.Title)

	calls := scheduler.EnqueueUniqueCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, jobs.SaveKey(id), calls[0].Key)
}

func TestSaveNote_CallerCopyIsNotMutated(t *testing.T) {
	service, _, _ := newTestService(t)

	original := &models.Note{Title: "mine", State: models.StateDefault}
	_, err := service.SaveNote(context.Background(), original)
	require.NoError(t, err)

	assert.Zero(t, original.ID)
	assert.Equal(t, models.StateDefault, original.State)
}

func TestDeleteNote_NeverSyncedDeletesLocallyOnly(t *testing.T) {
	service, store, scheduler := newTestService(t)
	ctx := context.Background()

	id, err := store.Upsert(ctx, &models.Note{Title: "draft", State: models.StateCreated})
	require.NoError(t, err)

	note, err := store.LoadByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, service.DeleteNote(ctx, note))

	// Gone synchronously, and the server was never involved.
	_, err = store.LoadByID(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
	assert.Empty(t, scheduler.EnqueueUniqueCalls())
}

func TestDeleteNote_SyncedNoteMarksDeletingAndSchedules(t *testing.T) {
	service, store, scheduler := newTestService(t)
	ctx := context.Background()

	id, err := store.Upsert(ctx, &models.Note{ServerID: 9, Title: "synced", State: models.StateDefault})
	require.NoError(t, err)

	note, err := store.LoadByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, service.DeleteNote(ctx, note))

	// Still present for the reconciler, hidden from the list.
	stored, err := store.LoadByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateDeleting, stored.State)

	active, err := service.Notes(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	calls := scheduler.EnqueueUniqueCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, jobs.DeleteKey(9), calls[0].Key)
	assert.Equal(t, jobs.KindDeleteNote, calls[0].Kind)
	assert.Equal(t, int64(9), calls[0].Payload)
}

func TestLoadNote_MissingReturnsNil(t *testing.T) {
	service, _, _ := newTestService(t)

	note, err := service.LoadNote(context.Background(), 123)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNotes_ReturnsActiveList(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, &models.Note{Title: "visible", State: models.StateDefault})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &models.Note{ServerID: 2, Title: "hidden", State: models.StateDeleting})
	require.NoError(t, err)

	list, err := service.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].Title)
}

func TestRequestSync(t *testing.T) {
	service, _, scheduler := newTestService(t)

	require.NoError(t, service.RequestSync(context.Background()))

	calls := scheduler.EnqueueUniquePeriodicCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, jobs.PeriodicSyncName, calls[0].Name)
	assert.Equal(t, jobs.KindSyncNotes, calls[0].Kind)
	assert.Equal(t, jobs.DefaultSyncInterval, calls[0].Interval)
}
