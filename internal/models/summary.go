package models

import "time"

// Summary holds aggregate statistics derived from a store snapshot.
// It is recomputed on demand and never persisted: a pure function of the
// store content and the supplied start/end instants.
type Summary struct {
	TestName        string         `json:"test_name"`
	StartTime       time.Time      `json:"start_time"`
	EndTime         time.Time      `json:"end_time"`
	DurationSeconds float64        `json:"duration_seconds"`
	TotalLogEntries int            `json:"total_log_entries"`
	LogsByLevel     map[string]int `json:"logs_by_level"`
	ErrorCount      int            `json:"error_count"`
	HasErrors       bool           `json:"has_errors"`
	SuccessRate     float64        `json:"success_rate"`
}

// CountForLevel returns the entry count recorded for a level.
// Level keys are stored lowercase.
func (s *Summary) CountForLevel(level LogLevel) int {
	if s.LogsByLevel == nil {
		return 0
	}
	return s.LogsByLevel[LevelKey(level)]
}

// LevelKey returns the lowercase map key used for a level in LogsByLevel
func LevelKey(level LogLevel) string {
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	}
	return ""
}
