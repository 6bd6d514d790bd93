package activity

import (
	"sort"
	"sync"
	"time"
)

// Mirror holds the local snapshot of the remote feed. Readers never
// observe a partial snapshot: Replace swaps the whole slice under lock,
// and Entries hands out a copy. When refreshes race, the last completed
// one wins.
type Mirror struct {
	mu       sync.RWMutex
	entries  []Entry
	lastSync time.Time
}

// NewMirror returns an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{}
}

// Replace installs a new snapshot, sorted most-recent-first.
func (m *Mirror) Replace(entries []Entry) {
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Timestamp.After(snapshot[j].Timestamp.Time)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = snapshot
	m.lastSync = time.Now()
}

// Entries returns a copy of the current snapshot, most-recent-first.
func (m *Mirror) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries in the snapshot.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// LastSync returns when the snapshot was last replaced, zero if never.
func (m *Mirror) LastSync() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSync
}
