package interfaces

import "github.com/ternarybob/memoro/internal/models"

// Recorder is the public logging surface owned by a single test execution.
// One Recorder instance is expected per test; all methods are safe for
// concurrent use but cross-entry ordering between concurrent callers is only
// guaranteed to be consistent with a single global append order.
type Recorder interface {
	// Record is the low-level logging operation. It always succeeds apart
	// from an unrecognized level.
	Record(level models.LogLevel, message string, extra models.ExtraData) (models.LogEntry, error)

	// Leveled logging. Each call snapshots the current step, builds an
	// immutable entry, appends it to the store, and optionally renders it to
	// the console collaborator.
	Debug(message string, extra models.ExtraData) models.LogEntry
	Info(message string, extra models.ExtraData) models.LogEntry
	Warning(message string, extra models.ExtraData) models.LogEntry
	Error(message string, extra models.ExtraData) models.LogEntry
	Critical(message string, extra models.ExtraData) models.LogEntry

	// Step context. Setting a step replaces the previous one unconditionally
	// (overwrite, not push); clearing with no active step is a no-op.
	SetCurrentStep(stepName string)
	ClearCurrentStep()
	CurrentStep() string

	// Helpers fixing extra data shape and default level
	LogAction(description string, details models.ExtraData) models.LogEntry
	LogAssertion(description string, passed bool, details models.ExtraData) models.LogEntry
	LogPerformance(operation string, durationSeconds float64, details models.ExtraData) (models.LogEntry, error)
	LogScreenshot(path string, description string) models.LogEntry
	StepPassed(stepName string, message string) models.LogEntry
	StepFailed(stepName string, message string) models.LogEntry
	StepSkipped(stepName string, message string) models.LogEntry

	// Read-only query surface for collaborators
	GetLogsByLevel(level models.LogLevel) []models.LogEntry
	GetLogsByStep(stepName string) []models.LogEntry
	GetErrorLogs() []models.LogEntry
	GetTestSummary() (models.Summary, error)

	// Scoped release. Close stamps the end timestamp, records a completion
	// entry, and runs any configured auto-export exactly once; the store is
	// finalized but not cleared.
	Close() error
	CloseWithError(cause error) error
}
