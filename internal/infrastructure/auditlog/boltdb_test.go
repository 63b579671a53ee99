package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndSize(t *testing.T) {
	store := openTestStore(t)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(Entry{
			Action:    "task.saved",
			SubjectID: "sub-1",
		}))
	}

	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	actions := []string{"user.verified", "task.saved", "task.deleted"}
	for i, action := range actions {
		require.NoError(t, store.Append(Entry{
			Action:    action,
			SubjectID: "sub-1",
			At:        base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "task.deleted", entries[0].Action)
	assert.Equal(t, "task.saved", entries[1].Action)
	assert.Equal(t, "user.verified", entries[2].Action)
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Entry{Action: "task.saved", SubjectID: "sub-1"}))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestClosedStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	var nilStore *Store
	assert.Error(t, nilStore.Append(Entry{Action: "task.saved"}))
	_, err := nilStore.Size()
	assert.Error(t, err)
}
