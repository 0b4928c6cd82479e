package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/memoro/internal/models"
)

// renderText produces the human-readable report: one line per entry followed
// by a trailing summary block mirroring the JSON summary fields
func renderText(entries []models.LogEntry, sum models.Summary) ([]byte, error) {
	var b strings.Builder

	for _, entry := range entries {
		b.WriteString(entry.Timestamp.Format(time.RFC3339Nano))
		fmt.Fprintf(&b, " [%s]", entry.Level)
		if entry.HasStep() {
			fmt.Fprintf(&b, " [%s]", entry.StepName)
		}
		b.WriteString(" ")
		b.WriteString(entry.Message)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "test_name: %s\n", sum.TestName)
	fmt.Fprintf(&b, "start_time: %s\n", sum.StartTime.Format(time.RFC3339Nano))
	fmt.Fprintf(&b, "end_time: %s\n", sum.EndTime.Format(time.RFC3339Nano))
	fmt.Fprintf(&b, "duration_seconds: %.2f\n", sum.DurationSeconds)
	fmt.Fprintf(&b, "total_log_entries: %d\n", sum.TotalLogEntries)
	fmt.Fprintf(&b, "logs_by_level: %s\n", formatLevelCounts(sum))
	fmt.Fprintf(&b, "error_count: %d\n", sum.ErrorCount)
	fmt.Fprintf(&b, "has_errors: %t\n", sum.HasErrors)
	fmt.Fprintf(&b, "success_rate: %.2f\n", sum.SuccessRate)

	return []byte(b.String()), nil
}

// formatLevelCounts renders the per-level counts in fixed severity order
func formatLevelCounts(sum models.Summary) string {
	parts := make([]string, 0, len(models.AllLevels()))
	for _, level := range models.AllLevels() {
		parts = append(parts, fmt.Sprintf("%s=%d", models.LevelKey(level), sum.CountForLevel(level)))
	}
	return strings.Join(parts, " ")
}
