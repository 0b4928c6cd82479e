package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ternarybob/memoro/internal/models"
)

// csvHeader is the fixed column layout of a CSV export
var csvHeader = []string{"timestamp", "level", "message", "test_name", "step_name", "extra_data"}

// renderCSV produces an RFC-4180 style rendering with one row per entry.
// Extra data is flattened to its JSON serialization in a single column;
// quoting of delimiters and quote characters is handled by encoding/csv.
func renderCSV(entries []models.LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	for i, entry := range entries {
		extra := ""
		if len(entry.ExtraData) > 0 {
			data, err := json.Marshal(entry.ExtraData)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d: %v", ErrEncoding, i, err)
			}
			extra = string(data)
		}

		row := []string{
			entry.Timestamp.Format(time.RFC3339Nano),
			entry.Level.String(),
			entry.Message,
			entry.TestName,
			entry.StepName,
			extra,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrEncoding, i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}
