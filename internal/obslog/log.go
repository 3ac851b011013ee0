// Package obslog provides the structured logger shared across the
// engine, built on log/slog for JSON-line output without a third-party
// logging dependency.
package obslog

import (
	"log/slog"
	"os"
)

// New returns a JSON-line slog.Logger at the given level ("debug",
// "info", "warn", "error"; defaults to "info" on an unrecognized value).
func New(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRun returns a logger annotated with runID, for every log line
// emitted while processing one run.
func WithRun(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With(slog.String("run_id", runID))
}

// WithQuestion returns a logger annotated with questionID in addition to
// whatever fields logger already carries.
func WithQuestion(logger *slog.Logger, questionID string) *slog.Logger {
	return logger.With(slog.String("question_id", questionID))
}
