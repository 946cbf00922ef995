package sync

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/hellsoft/simplenotes/internal/client/api"
	"github.com/hellsoft/simplenotes/internal/client/storage"
	"github.com/hellsoft/simplenotes/internal/client/storage/sqlite"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncNotes_EmptyStoreGainsServerNotes(t *testing.T) {
	store := newTestStorage(t)
	service := NewService(nil, store, testLogger())
	ctx := context.Background()

	result, err := service.SyncNotes(ctx, []api.Note{{ID: 5, Title: "A", Content: "alpha"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upserted)
	assert.Zero(t, result.Deleted)

	notes, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(5), notes[0].ServerID)
	assert.Equal(t, "A", notes[0].Title)
	assert.Equal(t, models.StateDefault, notes[0].State)
}

func TestSyncNotes_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	service := NewService(nil, store, testLogger())
	ctx := context.Background()

	snapshot := []api.Note{
		{ID: 1, Title: "one"},
		{ID: 2, Title: "two"},
	}

	_, err := service.SyncNotes(ctx, snapshot)
	require.NoError(t, err)

	first, err := store.LoadAll(ctx)
	require.NoError(t, err)

	_, err = service.SyncNotes(ctx, snapshot)
	require.NoError(t, err)

	second, err := store.LoadAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "applying the same snapshot twice must be a no-op")
}

func TestSyncNotes_PendingLocalChangesWin(t *testing.T) {
	store := newTestStorage(t)
	service := NewService(nil, store, testLogger())
	ctx := context.Background()

	pendingStates := []models.State{models.StateCreated, models.StateUpdating, models.StateDeleting}

	for i, state := range pendingStates {
		serverID := int64(i + 1)
		_, err := store.Upsert(ctx, &models.Note{
			ServerID: serverID,
			Title:    "local edit",
			State:    state,
		})
		require.NoError(t, err)
	}

	snapshot := []api.Note{
		{ID: 1, Title: "server version"},
		{ID: 2, Title: "server version"},
		{ID: 3, Title: "server version"},
	}

	result, err := service.SyncNotes(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Skipped)
	assert.Zero(t, result.Upserted)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, note := range all {
		assert.Equal(t, "local edit", note.Title, "pending local intent must win over the snapshot")
	}
}

func TestSyncNotes_UpdatesDefaultNotes(t *testing.T) {
	store := newTestStorage(t)
	service := NewService(nil, store, testLogger())
	ctx := context.Background()

	id, err := store.Upsert(ctx, &models.Note{ServerID: 9, Title: "old", State: models.StateDefault})
	require.NoError(t, err)

	_, err = service.SyncNotes(ctx, []api.Note{{ID: 9, Title: "new", Content: "fresh"}})
	require.NoError(t, err)

	note, err := store.LoadByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new", note.Title)
	assert.Equal(t, "fresh", note.Content)
	assert.Equal(t, models.StateDefault, note.State)
}

func TestSyncNotes_RemovesDefaultNotesMissingFromSnapshot(t *testing.T) {
	store := newTestStorage(t)
	service := NewService(nil, store, testLogger())
	ctx := context.Background()

	_, err := store.Upsert(ctx, &models.Note{ServerID: 1, Title: "stays", State: models.StateDefault})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &models.Note{ServerID: 2, Title: "goes", State: models.StateDefault})
	require.NoError(t, err)
	// A note that was never synced is not the server's to delete.
	_, err = store.Upsert(ctx, &models.Note{Title: "draft", State: models.StateCreated})
	require.NoError(t, err)

	result, err := service.SyncNotes(ctx, []api.Note{{ID: 1, Title: "stays"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = store.LoadByServerID(ctx, 2)
	assert.ErrorIs(t, err, storage.ErrNoteNotFound)
}

func TestSyncNotes_SkipsMalformedServerNotes(t *testing.T) {
	store := newTestStorage(t)
	service := NewService(nil, store, testLogger())
	ctx := context.Background()

	result, err := service.SyncNotes(ctx, []api.Note{
		{ID: 0, Title: "broken"},
		{ID: -3, Title: "also broken"},
		{ID: 4, Title: "fine"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.Upserted)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// batchCountingStorage counts DeleteBatch calls and their sizes.
type batchCountingStorage struct {
	storage.NoteStorage
	batchSizes []int
}

func (b *batchCountingStorage) DeleteBatch(ctx context.Context, ids []int64) error {
	b.batchSizes = append(b.batchSizes, len(ids))
	return b.NoteStorage.DeleteBatch(ctx, ids)
}

func TestSyncNotes_DeletionBatching(t *testing.T) {
	store := newTestStorage(t)
	counting := &batchCountingStorage{NoteStorage: store}
	service := NewService(nil, counting, testLogger())
	ctx := context.Background()

	notes := make([]*models.Note, 0, 250)
	for i := int64(1); i <= 250; i++ {
		notes = append(notes, &models.Note{ServerID: i, Title: "stale", State: models.StateDefault})
	}
	require.NoError(t, store.UpsertBatch(ctx, notes))

	result, err := service.SyncNotes(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 250, result.Deleted)
	assert.Equal(t, []int{100, 100, 50}, counting.batchSizes)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSync_FetchesSnapshotFromServer(t *testing.T) {
	store := newTestStorage(t)

	mockAPI := &httpClient.ClientAPIMock{
		FetchNotesFunc: func(ctx context.Context) ([]api.Note, error) {
			return []api.Note{{ID: 11, Title: "remote"}}, nil
		},
	}

	service := NewService(mockAPI, store, testLogger())

	result, err := service.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upserted)
	assert.Len(t, mockAPI.FetchNotesCalls(), 1)
}

func TestSync_FetchFailurePropagates(t *testing.T) {
	store := newTestStorage(t)

	mockAPI := &httpClient.ClientAPIMock{
		FetchNotesFunc: func(ctx context.Context) ([]api.Note, error) {
			return nil, &httpClient.TransientError{Err: context.DeadlineExceeded}
		},
	}

	service := NewService(mockAPI, store, testLogger())

	_, err := service.Sync(context.Background())
	require.Error(t, err)
	assert.True(t, httpClient.IsTransient(err))
}
