package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality. Records at this level are
	// logged above ErrorLevel, but logging them never exits the process.
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLogLevel translates a case-insensitive level name to a log level enum
func ParseLogLevel(name string) (int, error) {
	for level := TraceLevel; level <= FatalLevel; level++ {
		if strings.EqualFold(name, LogLevelToString(level)) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%s is an unknown log level", name)
}

// toSlogLevel maps a log level enum onto slog's levels. Trace and Fatal have no
// slog equivalent, so they sit one step below Debug and above Error. Fatal only
// changes the level of a record; callers decide whether to exit.
func toSlogLevel(level int) slog.Level {
	switch level {
	case TraceLevel:
		return slog.LevelDebug - 4
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case FatalLevel:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// Logger wraps slog.Logger with consistent field names for aggregation runs
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text Logger writing to w at the given log level.
// If w is nil, logs are written to stderr.
func NewLogger(w io.Writer, level int) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: toSlogLevel(level)}))}
}

// NewJSONLogger creates a Logger emitting JSON records to w at the given log level
func NewJSONLogger(w io.Writer, level int) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: toSlogLevel(level)}))}
}

// NoopLogger creates a Logger which discards everything
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithRun tags all records with a run id and the name of the method being run
func (l *Logger) WithRun(runID string, method string) *Logger {
	return &Logger{Logger: l.Logger.With("run", runID, "method", method)}
}

// WithPhase tags all records with a pipeline phase
func (l *Logger) WithPhase(phase string) *Logger {
	return &Logger{Logger: l.Logger.With("phase", phase)}
}
