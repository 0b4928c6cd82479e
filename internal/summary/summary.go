package summary

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ternarybob/memoro/internal/models"
)

// ErrInvalidTimeRange is a sentinel error returned when the summary end
// instant precedes the start instant
var ErrInvalidTimeRange = errors.New("invalid time range")

// Summarize computes aggregate statistics from a store snapshot.
// It is a pure function of the supplied entries and time range: per-level
// counts, error count (ERROR + CRITICAL), and the success rate
// 100 * (total - errors) / total rounded to two decimals. An empty run is
// vacuously successful and reports a success rate of 100.
func Summarize(entries []models.LogEntry, testName string, start, end time.Time) (models.Summary, error) {
	if end.Before(start) {
		return models.Summary{}, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidTimeRange, end.Format(time.RFC3339Nano), start.Format(time.RFC3339Nano))
	}

	logsByLevel := make(map[string]int, len(models.AllLevels()))
	for _, level := range models.AllLevels() {
		logsByLevel[models.LevelKey(level)] = 0
	}
	for _, entry := range entries {
		logsByLevel[models.LevelKey(entry.Level)]++
	}

	total := len(entries)
	errorCount := logsByLevel[models.LevelKey(models.LevelError)] +
		logsByLevel[models.LevelKey(models.LevelCritical)]

	successRate := 100.0
	if total > 0 {
		successRate = roundRate(100 * float64(total-errorCount) / float64(total))
	}

	return models.Summary{
		TestName:        testName,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: end.Sub(start).Seconds(),
		TotalLogEntries: total,
		LogsByLevel:     logsByLevel,
		ErrorCount:      errorCount,
		HasErrors:       errorCount > 0,
		SuccessRate:     successRate,
	}, nil
}

// roundRate rounds a percentage to two decimal places
func roundRate(rate float64) float64 {
	return math.Round(rate*100) / 100
}
