package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelops/reelsweep/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.NewSqliteDb(db.WithMaxOpenConns(1))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store, err := New(database)
	require.NoError(t, err)
	return store
}

func TestStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := map[string]any{"moved_subdirectories": []string{"movieB"}}
	entry, err := store.Record(ctx, "move_non_duplicates", false, report, time.Now(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, StatusOK, entry.Status)

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "move_non_duplicates", entries[0].Operation)
	assert.False(t, entries[0].DryRun)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(entries[0].Report, &decoded))
	assert.Contains(t, decoded, "moved_subdirectories")
}

func TestStore_RecordError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry, err := store.Record(ctx, "compare_directories", false, nil, time.Now(), errors.New("root does not exist"))
	require.NoError(t, err)
	assert.Equal(t, StatusError, entry.Status)
	assert.Equal(t, "root does not exist", entry.Error)
	assert.Equal(t, json.RawMessage("{}"), entry.Report)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := time.Now().Add(-time.Minute)
	_, err := store.Record(ctx, "first", true, nil, older, nil)
	require.NoError(t, err)
	_, err = store.Record(ctx, "second", true, nil, time.Now(), nil)
	require.NoError(t, err)

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Operation)

	entries, err = store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
