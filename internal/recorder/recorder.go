package recorder

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/export"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/models"
	"github.com/ternarybob/memoro/internal/store"
	"github.com/ternarybob/memoro/internal/summary"
)

// ErrInvalidMeasurement is a sentinel error returned for a negative
// performance duration
var ErrInvalidMeasurement = errors.New("invalid measurement")

// Recorder is the per-test logging façade: step context plus entry store,
// with leveled logging, action/assertion/performance/screenshot helpers, and
// a read-only query surface. One instance per test execution; construction
// records the start timestamp and an initial "test started" entry, Close
// finalizes exactly once.
type Recorder struct {
	testName string
	runID    string
	cfg      Config
	store    interfaces.EntryStore
	console  arbor.ILogger
	steps    *stepContext

	mu        sync.Mutex
	clock     func() time.Time
	lastStamp time.Time
	startTime time.Time
	endTime   time.Time
	closed    bool
}

// compile-time interface check
var _ interfaces.Recorder = (*Recorder)(nil)

// New creates a Recorder for one test run. The store starts empty; it is
// only ever reset by constructing a new Recorder.
func New(cfg Config) (*Recorder, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	r := &Recorder{
		testName: cfg.TestName,
		runID:    uuid.New().String(),
		cfg:      cfg,
		store:    store.New(),
		steps:    &stepContext{},
		clock:    time.Now,
	}

	if cfg.EnableConsole {
		r.console = cfg.Console
		if r.console == nil {
			r.console = common.ConsoleLogger()
		}
	}

	r.startTime = r.nextStamp()
	r.record(models.LevelInfo, fmt.Sprintf("Test started: %s", r.testName), "", nil)

	return r, nil
}

// TestName returns the identifier of the owning test run
func (r *Recorder) TestName() string { return r.testName }

// RunID returns the unique identifier of this recorder instance
func (r *Recorder) RunID() string { return r.runID }

// StartTime returns the acquisition timestamp
func (r *Recorder) StartTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startTime
}

// Snapshot returns a copy of all recorded entries in append order
func (r *Recorder) Snapshot() []models.LogEntry {
	return r.store.Snapshot()
}

// Record is the low-level logging operation: it snapshots the step context,
// builds an immutable entry with an internally assigned timestamp, and
// appends it. The only failure mode is an unrecognized level.
func (r *Recorder) Record(level models.LogLevel, message string, extra models.ExtraData) (models.LogEntry, error) {
	if !level.IsValid() {
		return models.LogEntry{}, fmt.Errorf("%w: %q", models.ErrInvalidLevel, level)
	}
	return r.record(level, message, r.steps.snapshot(), extra), nil
}

// Debug logs a DEBUG entry
func (r *Recorder) Debug(message string, extra models.ExtraData) models.LogEntry {
	return r.record(models.LevelDebug, message, r.steps.snapshot(), extra)
}

// Info logs an INFO entry
func (r *Recorder) Info(message string, extra models.ExtraData) models.LogEntry {
	return r.record(models.LevelInfo, message, r.steps.snapshot(), extra)
}

// Warning logs a WARNING entry
func (r *Recorder) Warning(message string, extra models.ExtraData) models.LogEntry {
	return r.record(models.LevelWarning, message, r.steps.snapshot(), extra)
}

// Error logs an ERROR entry
func (r *Recorder) Error(message string, extra models.ExtraData) models.LogEntry {
	return r.record(models.LevelError, message, r.steps.snapshot(), extra)
}

// Critical logs a CRITICAL entry
func (r *Recorder) Critical(message string, extra models.ExtraData) models.LogEntry {
	return r.record(models.LevelCritical, message, r.steps.snapshot(), extra)
}

// SetCurrentStep replaces the current step unconditionally. Subsequent
// entries are tagged with the new step name; earlier entries keep their
// snapshot. The context mutation itself records nothing.
func (r *Recorder) SetCurrentStep(stepName string) {
	r.steps.set(stepName)
}

// ClearCurrentStep clears the step context. Idempotent.
func (r *Recorder) ClearCurrentStep() {
	r.steps.clear()
}

// CurrentStep returns the active step name, or "" if none
func (r *Recorder) CurrentStep() string {
	return r.steps.snapshot()
}

// LogAction logs a test action at INFO with the action description in the
// extra data. Caller-supplied details are merged on top.
func (r *Recorder) LogAction(description string, details models.ExtraData) models.LogEntry {
	extra := models.ExtraData{models.ExtraKeyAction: description}.Merge(details)
	return r.record(models.LevelInfo, "ACTION: "+description, r.steps.snapshot(), extra)
}

// LogAssertion logs an assertion result: INFO when passed, ERROR when not.
// The boolean result is stored alongside any caller-supplied details.
func (r *Recorder) LogAssertion(description string, passed bool, details models.ExtraData) models.LogEntry {
	status := "PASSED"
	level := models.LevelInfo
	if !passed {
		status = "FAILED"
		level = models.LevelError
	}
	extra := models.ExtraData{models.ExtraKeyPassed: passed}.Merge(details)
	return r.record(level, fmt.Sprintf("%s ASSERTION: %s", status, description), r.steps.snapshot(), extra)
}

// LogPerformance logs a performance measurement at INFO. A negative duration
// fails with ErrInvalidMeasurement; zero is a valid measurement.
func (r *Recorder) LogPerformance(operation string, durationSeconds float64, details models.ExtraData) (models.LogEntry, error) {
	if durationSeconds < 0 {
		return models.LogEntry{}, fmt.Errorf("%w: negative duration %.2fs for %q",
			ErrInvalidMeasurement, durationSeconds, operation)
	}
	extra := models.ExtraData{
		models.ExtraKeyOperation:       operation,
		models.ExtraKeyDurationSeconds: durationSeconds,
	}.Merge(details)
	message := fmt.Sprintf("PERFORMANCE: %s took %.2fs", operation, durationSeconds)
	return r.record(models.LevelInfo, message, r.steps.snapshot(), extra), nil
}

// LogScreenshot logs a screenshot reference at INFO. The path is opaque text;
// existence is never verified here.
func (r *Recorder) LogScreenshot(path string, description string) models.LogEntry {
	message := "SCREENSHOT: " + path
	if description != "" {
		message = fmt.Sprintf("SCREENSHOT: %s - %s", description, path)
	}
	extra := models.ExtraData{models.ExtraKeyScreenshotPath: path}
	return r.record(models.LevelInfo, message, r.steps.snapshot(), extra)
}

// StepPassed logs a passed step result, tagged with stepName regardless of
// the current step context
func (r *Recorder) StepPassed(stepName string, message string) models.LogEntry {
	return r.stepResult(stepName, message, models.StepStatusPassed, models.LevelInfo, "PASSED")
}

// StepFailed logs a failed step result at ERROR
func (r *Recorder) StepFailed(stepName string, message string) models.LogEntry {
	return r.stepResult(stepName, message, models.StepStatusFailed, models.LevelError, "FAILED")
}

// StepSkipped logs a skipped step result at WARNING
func (r *Recorder) StepSkipped(stepName string, message string) models.LogEntry {
	return r.stepResult(stepName, message, models.StepStatusSkipped, models.LevelWarning, "SKIPPED")
}

// stepResult tags the entry with the explicit step name, not the step
// context snapshot
func (r *Recorder) stepResult(stepName, message, status string, level models.LogLevel, label string) models.LogEntry {
	text := fmt.Sprintf("STEP %s: %s", label, stepName)
	if message != "" {
		text += " - " + message
	}
	extra := models.ExtraData{models.ExtraKeyStepStatus: status}
	return r.record(level, text, stepName, extra)
}

// GetLogsByLevel returns all entries of a specific level, in original order
func (r *Recorder) GetLogsByLevel(level models.LogLevel) []models.LogEntry {
	return r.store.FilterByLevel(level)
}

// GetLogsByStep returns all entries tagged with a specific step
func (r *Recorder) GetLogsByStep(stepName string) []models.LogEntry {
	return r.store.FilterByStep(stepName)
}

// GetErrorLogs returns all ERROR and CRITICAL entries in chronological order
func (r *Recorder) GetErrorLogs() []models.LogEntry {
	return r.store.Errors()
}

// GetTestSummary computes the summary from the current store snapshot.
// Before Close the end instant is the time of the call; after Close it is
// the finalized end timestamp.
func (r *Recorder) GetTestSummary() (models.Summary, error) {
	r.mu.Lock()
	start := r.startTime
	end := r.endTime
	r.mu.Unlock()

	if end.IsZero() {
		end = r.nextStamp()
	}
	return summary.Summarize(r.store.Snapshot(), r.testName, start, end)
}

// Close finalizes the recorder: records a completion entry, stamps the end
// timestamp, and runs any configured auto-export. Safe to call on every exit
// path; only the first call has any effect. The store is finalized but not
// cleared, so the query surface stays valid after Close.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	total := r.store.Len()
	errorCount := len(r.store.Errors())
	duration := r.nextStamp().Sub(r.StartTime()).Seconds()
	r.record(models.LevelInfo, fmt.Sprintf(
		"Test completed. Duration: %.2fs, Total logs: %d, Errors: %d",
		duration, total, errorCount), r.steps.snapshot(), nil)

	r.mu.Lock()
	r.endTime = r.nextStampLocked()
	r.mu.Unlock()

	return r.autoExport()
}

// CloseWithError records the failure cause at CRITICAL, then finalizes.
// Intended for deferred release on abnormal exit paths.
func (r *Recorder) CloseWithError(cause error) error {
	if cause != nil && !r.isClosed() {
		r.Critical(fmt.Sprintf("Test failed: %v", cause), nil)
	}
	return r.Close()
}

func (r *Recorder) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// autoExport renders and writes every configured format. Export failures are
// collected and returned; the buffered entries are unaffected.
func (r *Recorder) autoExport() error {
	cfg := r.cfg.AutoExport
	if cfg == nil {
		return nil
	}

	sum, err := r.GetTestSummary()
	if err != nil {
		return fmt.Errorf("auto-export summary failed: %w", err)
	}

	baseName := cfg.BaseName
	if baseName == "" {
		baseName = fmt.Sprintf("%s-%s", sanitizeName(r.testName), r.runID[:8])
	}

	entries := r.store.Snapshot()
	var errs []error
	for _, format := range cfg.Formats {
		data, err := export.Export(entries, sum, format)
		if err != nil {
			errs = append(errs, fmt.Errorf("auto-export render %s: %w", format, err))
			continue
		}
		name := fmt.Sprintf("%s.%s", baseName, format.Extension())
		if err := cfg.Sink.Write(name, data); err != nil {
			errs = append(errs, fmt.Errorf("auto-export write %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// record builds the immutable entry, appends it, and renders it to the
// console collaborator when enabled
func (r *Recorder) record(level models.LogLevel, message, stepName string, extra models.ExtraData) models.LogEntry {
	entry := models.LogEntry{
		Timestamp: r.nextStamp(),
		Level:     level,
		Message:   message,
		TestName:  r.testName,
		StepName:  stepName,
		ExtraData: extra,
	}

	stored := r.store.Append(entry)
	r.render(stored)
	return stored
}

// nextStamp returns a monotonically non-decreasing wall-clock instant
func (r *Recorder) nextStamp() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextStampLocked()
}

// nextStampLocked requires r.mu to be held
func (r *Recorder) nextStampLocked() time.Time {
	now := r.clock()
	if now.Before(r.lastStamp) {
		now = r.lastStamp
	}
	r.lastStamp = now
	return now
}

// render emits the entry to the console collaborator. A display-side failure
// must never surface to the caller or lose the stored entry.
func (r *Recorder) render(entry models.LogEntry) {
	if r.console == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	line := entry.Message
	if entry.HasStep() {
		line = fmt.Sprintf("[%s] %s", entry.StepName, entry.Message)
	}

	switch entry.Level {
	case models.LevelDebug:
		r.console.Debug().Str("test", r.testName).Msg(line)
	case models.LevelInfo:
		r.console.Info().Str("test", r.testName).Msg(line)
	case models.LevelWarning:
		r.console.Warn().Str("test", r.testName).Msg(line)
	case models.LevelError:
		r.console.Error().Str("test", r.testName).Msg(line)
	case models.LevelCritical:
		r.console.Error().Str("test", r.testName).Str("severity", "critical").Msg(line)
	}
}

// sanitizeName makes a test name safe for use in export file names
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	return replacer.Replace(name)
}
