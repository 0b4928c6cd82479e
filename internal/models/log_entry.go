package models

import "time"

// LogEntry represents a single recorded event for one test run.
// Entries are immutable once appended to a store: the timestamp is assigned
// at creation, the step name is a snapshot of the step context at call time
// (not a live reference), and extra data is read-only once attached.
//
// Timestamp Format:
//   - Timestamp: wall-clock instant, monotonically non-decreasing per recorder
//   - Serialized as RFC3339Nano (ISO-8601) in exports
//
// Sequence is assigned by the store at append and provides stable ordering
// when two entries carry the same timestamp (creation order, never reordered
// by level or step).
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Sequence  int       `json:"-"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	TestName  string    `json:"test_name"`
	StepName  string    `json:"step_name,omitempty"`
	ExtraData ExtraData `json:"extra_data,omitempty"`
}

// Step status values recorded by the step result helpers under the
// "step_status" extra data key.
const (
	StepStatusPassed  = "passed"
	StepStatusFailed  = "failed"
	StepStatusSkipped = "skipped"
)

// ExtraDataKey constants for the shapes fixed by the recorder helpers
const (
	ExtraKeyAction          = "action"
	ExtraKeyPassed          = "passed"
	ExtraKeyOperation       = "operation"
	ExtraKeyDurationSeconds = "duration_seconds"
	ExtraKeyScreenshotPath  = "screenshot_path"
	ExtraKeyStepStatus      = "step_status"
)

// HasStep reports whether the entry was tagged with a step name
func (e *LogEntry) HasStep() bool {
	return e.StepName != ""
}
