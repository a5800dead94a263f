package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st := seededInventory()
	st.Sequences["ORD"] = 7
	require.NoError(t, WriteSnapshot(path, st))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Materials[0].Stock)
	assert.Equal(t, 7, loaded.Sequences["ORD"])
	// Maps come back usable even when they were empty on disk.
	assert.NotNil(t, loaded.Carts)
	assert.NotNil(t, loaded.Chats)
}

func TestLoadSnapshotMissingFileYieldsFreshState(t *testing.T) {
	st, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, st.Users)
	assert.NotNil(t, st.Sequences)
}

func TestLoadSnapshotCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadSnapshot(path)
	assert.Error(t, err)
}

func TestSnapshotterDebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	p := NewSnapshotter(path, 50*time.Millisecond)

	// A burst of notifications: only the last state may land on disk.
	for i := 1; i <= 5; i++ {
		st := NewState()
		st.Sequences["ORD"] = i
		p.Notify(st)
	}
	require.True(t, p.WaitFlushed(2*time.Second), "debounced write never happened")

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Sequences["ORD"])
}

func TestSnapshotterCloseFlushesPendingState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	p := NewSnapshotter(path, time.Hour) // never fires on its own

	st := NewState()
	st.ActivityLog = []model.ActivityLog{{ID: "a-1", Description: "terakhir"}}
	p.Notify(st)
	p.Close()

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, loaded.ActivityLog, 1)
	assert.Equal(t, "a-1", loaded.ActivityLog[0].ID)
}
