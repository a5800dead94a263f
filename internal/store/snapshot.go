package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSnapshotDebounce is the quiet period after the last state change
// before a snapshot is written.
const DefaultSnapshotDebounce = 500 * time.Millisecond

// Snapshotter persists the aggregate to a JSON file on local disk. Writes are
// debounced: each state change (re)arms a timer, so a burst of actions costs
// at most one write per quiet period. The whole aggregate is written, carts
// and the MRU login list included, so an open cart survives a restart; logout
// is what clears a user's carts.
type Snapshotter struct {
	path     string
	debounce time.Duration

	mu      sync.Mutex
	pending *AppState
	timer   *time.Timer
	done    chan struct{}
}

// NewSnapshotter creates a snapshotter writing to path. A zero debounce uses
// the default.
func NewSnapshotter(path string, debounce time.Duration) *Snapshotter {
	if debounce <= 0 {
		debounce = DefaultSnapshotDebounce
	}
	return &Snapshotter{
		path:     path,
		debounce: debounce,
		done:     make(chan struct{}, 1),
	}
}

// Notify is the store subscriber: it records the latest state and (re)arms
// the debounce timer, superseding any pending write.
func (p *Snapshotter) Notify(st AppState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = &st
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.flush)
}

// flush writes the most recent pending state.
func (p *Snapshotter) flush() {
	p.mu.Lock()
	st := p.pending
	p.pending = nil
	p.mu.Unlock()

	if st == nil {
		return
	}
	if err := writeSnapshot(p.path, *st); err != nil {
		log.Error().Err(err).Str("path", p.path).Msg("snapshot write failed")
		return
	}
	log.Debug().Str("path", p.path).Msg("snapshot written")

	select {
	case p.done <- struct{}{}:
	default:
	}
}

// Close cancels any armed timer and synchronously writes a final snapshot if
// one is pending. Called on shutdown.
func (p *Snapshotter) Close() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	p.flush()
}

// WaitFlushed blocks until a flush completes or the timeout elapses.
// Test helper.
func (p *Snapshotter) WaitFlushed(timeout time.Duration) bool {
	select {
	case <-p.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// WriteSnapshot persists st synchronously, bypassing the debounce. Seed and
// migration tooling uses it; the server goes through Snapshotter.
func WriteSnapshot(path string, st AppState) error {
	return writeSnapshot(path, st)
}

// writeSnapshot marshals st and writes it atomically: temp file in the same
// directory, then rename.
func writeSnapshot(path string, st AppState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("snapshot: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	return nil
}

// LoadSnapshot rehydrates the aggregate from disk. A missing file yields a
// fresh empty state, not an error.
func LoadSnapshot(path string) (AppState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return AppState{}, fmt.Errorf("snapshot: read: %w", err)
	}
	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return AppState{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	st.normalize()
	return st, nil
}
