package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLevel is a sentinel error returned when an unrecognized log level is used
var ErrInvalidLevel = errors.New("invalid log level")

// LogLevel represents the severity classification of a log entry.
// Levels are ordered: DEBUG < INFO < WARNING < ERROR < CRITICAL.
type LogLevel string

// LogLevel constants define all supported entry severities
const (
	LevelDebug    LogLevel = "DEBUG"
	LevelInfo     LogLevel = "INFO"
	LevelWarning  LogLevel = "WARNING"
	LevelError    LogLevel = "ERROR"
	LevelCritical LogLevel = "CRITICAL"
)

// IsValid checks if the LogLevel is a known, valid level
func (l LogLevel) IsValid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return true
	}
	return false
}

// String returns the string representation of the LogLevel
func (l LogLevel) String() string {
	return string(l)
}

// Weight returns the numeric severity rank for level comparison.
// Unknown levels rank below DEBUG.
func (l LogLevel) Weight() int {
	switch l {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarning:
		return 2
	case LevelError:
		return 3
	case LevelCritical:
		return 4
	}
	return -1
}

// IsError reports whether the level counts toward the error total (ERROR or CRITICAL)
func (l LogLevel) IsError() bool {
	return l == LevelError || l == LevelCritical
}

// AllLevels returns a slice of all valid LogLevel values in severity order
func AllLevels() []LogLevel {
	return []LogLevel{
		LevelDebug,
		LevelInfo,
		LevelWarning,
		LevelError,
		LevelCritical,
	}
}

// ParseLevel converts a level name to a LogLevel.
// Matching is case-insensitive and accepts "warn" as an alias for WARNING.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}
