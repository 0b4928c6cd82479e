package store

import (
	"sync"

	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
)

// Store is the in-memory append-only buffer of log entries for one test run.
// Created empty at recorder construction, grows monotonically, and is
// conceptually frozen once the recorder's scope ends. All operations are
// internally synchronized so concurrent callers cannot corrupt the entry
// sequence; ordering between concurrent writers follows the global append
// order.
type Store struct {
	mu      sync.RWMutex
	entries []models.LogEntry
	seq     int
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// compile-time interface check
var _ interfaces.EntryStore = (*Store)(nil)

// Append stores the entry, assigns the next sequence number, and returns the
// stored copy. Entries are never mutated or removed after append.
func (s *Store) Append(entry models.LogEntry) models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	entry.Sequence = s.seq
	s.entries = append(s.entries, entry)
	return entry
}

// Len returns the number of stored entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a copy of all entries in append (= chronological) order
func (s *Store) Snapshot() []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.LogEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// FilterByLevel returns entries with an exact level match, in original order.
// An empty result is not an error.
func (s *Store) FilterByLevel(level models.LogLevel) []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.LogEntry
	for _, entry := range s.entries {
		if entry.Level == level {
			matched = append(matched, entry)
		}
	}
	return matched
}

// FilterByStep returns entries whose step snapshot matches exactly.
// Entries recorded without a step never match any query, including a query
// for the empty step name.
func (s *Store) FilterByStep(stepName string) []models.LogEntry {
	if stepName == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.LogEntry
	for _, entry := range s.entries {
		if entry.StepName == stepName {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Errors returns all ERROR and CRITICAL entries merged in chronological
// order across both levels (append order, not grouped by level).
func (s *Store) Errors() []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.LogEntry
	for _, entry := range s.entries {
		if entry.Level.IsError() {
			matched = append(matched, entry)
		}
	}
	return matched
}
