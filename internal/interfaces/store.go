package interfaces

import "github.com/ternarybob/memoro/internal/models"

// EntryStore is the append-only ordered buffer of log entries for one
// recorder/test lifetime. Implementations must preserve insertion order,
// never mutate or remove appended entries, and be safe for concurrent use.
type EntryStore interface {
	// Append stores an entry, assigns its sequence number, and returns the
	// stored copy. O(1) amortized.
	Append(entry models.LogEntry) models.LogEntry

	// Len returns the number of stored entries
	Len() int

	// Snapshot returns a copy of all entries in append order
	Snapshot() []models.LogEntry

	// FilterByLevel returns entries with an exact level match, in original order
	FilterByLevel(level models.LogLevel) []models.LogEntry

	// FilterByStep returns entries whose step snapshot matches exactly.
	// Entries recorded without a step never match any query.
	FilterByStep(stepName string) []models.LogEntry

	// Errors returns ERROR and CRITICAL entries merged in chronological order
	Errors() []models.LogEntry
}
