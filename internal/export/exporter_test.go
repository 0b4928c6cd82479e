package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/memoro/internal/models"
	"github.com/ternarybob/memoro/internal/summary"
)

var (
	exportStart = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	exportEnd   = time.Date(2025, 1, 1, 10, 1, 0, 0, time.UTC)
)

func sampleEntries() []models.LogEntry {
	return []models.LogEntry{
		{
			Timestamp: exportStart.Add(1 * time.Second),
			Level:     models.LevelInfo,
			Message:   "a",
			TestName:  "test_export",
			StepName:  "Setup",
		},
		{
			Timestamp: exportStart.Add(2 * time.Second),
			Level:     models.LevelError,
			Message:   "b",
			TestName:  "test_export",
			StepName:  "Setup",
			ExtraData: models.ExtraData{"action": "submit", "attempt": 2},
		},
		{
			Timestamp: exportStart.Add(3 * time.Second),
			Level:     models.LevelWarning,
			Message:   "c",
			TestName:  "test_export",
			StepName:  "Run",
		},
	}
}

func sampleSummary(t *testing.T, entries []models.LogEntry) models.Summary {
	t.Helper()
	sum, err := summary.Summarize(entries, "test_export", exportStart, exportEnd)
	require.NoError(t, err)
	return sum
}

func TestParseFormat(t *testing.T) {
	for name, expected := range map[string]Format{
		"json": FormatJSON,
		"JSON": FormatJSON,
		"txt":  FormatText,
		"text": FormatText,
		"csv":  FormatCSV,
	} {
		format, err := ParseFormat(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, expected, format)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_UnknownFormat(t *testing.T) {
	entries := sampleEntries()
	_, err := Export(entries, sampleSummary(t, entries), Format("yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_JSONRoundTrip(t *testing.T) {
	entries := sampleEntries()
	sum := sampleSummary(t, entries)

	data, err := Export(entries, sum, FormatJSON)
	require.NoError(t, err)

	doc, err := Decode(data)
	require.NoError(t, err)

	// Re-parsing yields a summary and entry count identical to the source
	assert.Equal(t, sum.TotalLogEntries, doc.TestSummary.TotalLogEntries)
	assert.Len(t, doc.LogEntries, doc.TestSummary.TotalLogEntries)
	assert.Equal(t, sum.ErrorCount, doc.TestSummary.ErrorCount)
	assert.Equal(t, sum.SuccessRate, doc.TestSummary.SuccessRate)
	assert.Equal(t, sum.LogsByLevel, doc.TestSummary.LogsByLevel)

	for i, decoded := range doc.LogEntries {
		assert.Equal(t, entries[i].Message, decoded.Message)
		assert.Equal(t, entries[i].Level, decoded.Level)
		assert.Equal(t, entries[i].StepName, decoded.StepName)
		assert.True(t, entries[i].Timestamp.Equal(decoded.Timestamp))
	}
}

func TestExport_JSONOmitsAbsentOptionalFields(t *testing.T) {
	entries := []models.LogEntry{{
		Timestamp: exportStart,
		Level:     models.LevelInfo,
		Message:   "bare",
		TestName:  "test_export",
	}}

	data, err := Export(entries, sampleSummary(t, entries), FormatJSON)
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "step_name")
	assert.NotContains(t, text, "extra_data")
}

func TestExport_JSONEmptyStore(t *testing.T) {
	sum := sampleSummary(t, nil)
	data, err := Export(nil, sum, FormatJSON)
	require.NoError(t, err)

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, doc.LogEntries)
	assert.Empty(t, doc.LogEntries)
	assert.Equal(t, 100.0, doc.TestSummary.SuccessRate)
}

func TestExport_Text(t *testing.T) {
	entries := sampleEntries()
	data, err := Export(entries, sampleSummary(t, entries), FormatText)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")

	// One line per entry: <timestamp> [<LEVEL>] [<step>] <message>
	assert.Contains(t, lines[0], "[INFO]")
	assert.Contains(t, lines[0], "[Setup]")
	assert.True(t, strings.HasSuffix(lines[0], " a"))
	assert.Contains(t, lines[1], "[ERROR]")

	// Trailing summary block mirrors the JSON summary fields
	text := string(data)
	assert.Contains(t, text, "test_name: test_export")
	assert.Contains(t, text, "total_log_entries: 3")
	assert.Contains(t, text, "error_count: 1")
	assert.Contains(t, text, "success_rate: 66.67")
	assert.Contains(t, text, "logs_by_level: debug=0 info=1 warning=1 error=1 critical=0")
}

func TestExport_Text_EntryWithoutStepHasNoStepBracket(t *testing.T) {
	entries := []models.LogEntry{{
		Timestamp: exportStart,
		Level:     models.LevelInfo,
		Message:   "no step here",
		TestName:  "test_export",
	}}

	data, err := Export(entries, sampleSummary(t, entries), FormatText)
	require.NoError(t, err)

	firstLine := strings.SplitN(string(data), "\n", 2)[0]
	assert.Contains(t, firstLine, "[INFO] no step here")
	assert.Equal(t, 1, strings.Count(firstLine, "["))
}

func TestExport_CSV(t *testing.T) {
	entries := sampleEntries()
	data, err := Export(entries, sampleSummary(t, entries), FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 rows

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "INFO", records[1][1])
	assert.Equal(t, "a", records[1][2])
	assert.Equal(t, "Setup", records[1][4])

	// Flattened extra data re-parses as JSON text
	assert.Contains(t, records[2][5], `"action":"submit"`)

	// Entry without extra data renders an empty column
	assert.Equal(t, "", records[3][5])
}

func TestExport_CSV_QuotesDelimiters(t *testing.T) {
	message := `hello, "quoted" world`
	entries := []models.LogEntry{{
		Timestamp: exportStart,
		Level:     models.LevelInfo,
		Message:   message,
		TestName:  "test_export",
	}}

	data, err := Export(entries, sampleSummary(t, entries), FormatCSV)
	require.NoError(t, err)

	// The quoted field re-parses back to the original message unchanged
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, message, records[1][2])
}

func TestExport_EncodingErrorForUnserializableExtraData(t *testing.T) {
	entries := []models.LogEntry{{
		Timestamp: exportStart,
		Level:     models.LevelInfo,
		Message:   "bad extra",
		TestName:  "test_export",
		ExtraData: models.ExtraData{"sink": make(chan int)},
	}}
	sum := sampleSummary(t, nil)

	for _, format := range AllFormats() {
		_, err := Export(entries, sum, format)
		require.Error(t, err, "format %s", format)
		assert.ErrorIs(t, err, ErrEncoding, "format %s", format)
	}
}

func TestFileSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")
	sink := NewFileSink(dir)

	require.NoError(t, sink.Write("session.txt", []byte("content")))

	data, err := os.ReadFile(filepath.Join(dir, "session.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
