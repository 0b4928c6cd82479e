package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/memoro/internal/models"
)

// Sentinel errors for the export boundary
var (
	// ErrUnknownFormat is returned for an unrecognized export format selector
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrEncoding is returned when an entry carries extra data that cannot be
	// serialized in the requested format
	ErrEncoding = errors.New("export encoding failed")
)

// Format selects the export rendering
type Format string

// Format constants define all supported export renderings
const (
	FormatJSON Format = "json"
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
)

// IsValid checks if the Format is a known, valid format
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatText, FormatCSV:
		return true
	}
	return false
}

// String returns the string representation of the Format
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	return string(f)
}

// AllFormats returns a slice of all valid Format values
func AllFormats() []Format {
	return []Format{FormatJSON, FormatText, FormatCSV}
}

// ParseFormat converts a format name to a Format. Matching is case-insensitive
// and accepts "text" as an alias for txt.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Document is the top-level shape of a JSON export: the summary plus all
// entries in store order
type Document struct {
	TestSummary models.Summary    `json:"test_summary"`
	LogEntries  []models.LogEntry `json:"log_entries"`
}

// Export renders a store snapshot and its summary into the requested format
// and returns the encoded bytes (UTF-8). The exporter performs no I/O and
// cannot fail for reasons unrelated to the data itself: the only failure
// modes are an unknown format and non-serializable extra data.
func Export(entries []models.LogEntry, sum models.Summary, format Format) ([]byte, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return renderJSON(entries, sum)
	case FormatText:
		return renderText(entries, sum)
	case FormatCSV:
		return renderCSV(entries)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode parses a JSON export back into a Document
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode export document: %w", err)
	}
	return &doc, nil
}

// validateEntries rejects entries whose extra data falls outside the closed
// serializable set, so no format silently drops data
func validateEntries(entries []models.LogEntry) error {
	for i, entry := range entries {
		if err := entry.ExtraData.Validate(); err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrEncoding, i, err)
		}
	}
	return nil
}

// renderJSON produces the documented two-key JSON object
func renderJSON(entries []models.LogEntry, sum models.Summary) ([]byte, error) {
	doc := Document{
		TestSummary: sum,
		LogEntries:  entries,
	}
	if doc.LogEntries == nil {
		doc.LogEntries = []models.LogEntry{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return data, nil
}
