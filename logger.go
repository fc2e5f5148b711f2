package sulcigo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sulcigo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithFold adds a fold ID field to the logger.
func (l *Logger) WithFold(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("fold", id),
	}
}

// LogFoldDecision logs the identification outcome for one fold.
func (l *Logger) LogFoldDecision(ctx context.Context, fold, size int, decision string, labels []int) {
	l.DebugContext(ctx, "fold decision",
		"fold", fold,
		"vertices", size,
		"decision", decision,
		"labels", labels,
	)
}

// LogExtractFolds logs a fold extraction run.
func (l *Logger) LogExtractFolds(ctx context.Context, numFolds int, threshold float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fold extraction failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "fold extraction completed",
			"folds", numFolds,
			"threshold", threshold,
		)
	}
}

// LogExtractSubfolds logs a basin segmentation run.
func (l *Logger) LogExtractSubfolds(ctx context.Context, numSubfolds, numSeeds int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "subfold extraction failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "subfold extraction completed",
			"subfolds", numSubfolds,
			"seeds", numSeeds,
		)
	}
}

// LogIdentifySulci logs a sulcus identification run.
func (l *Logger) LogIdentifySulci(ctx context.Context, numSulci, numFolds int, unaccounted []int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sulcus identification failed",
			"error", err,
		)
	} else if len(unaccounted) > 0 {
		l.InfoContext(ctx, "sulcus identification completed with unaccounted sulci",
			"sulci", numSulci,
			"folds", numFolds,
			"unaccounted", unaccounted,
		)
	} else {
		l.InfoContext(ctx, "sulcus identification completed",
			"sulci", numSulci,
			"folds", numFolds,
		)
	}
}
