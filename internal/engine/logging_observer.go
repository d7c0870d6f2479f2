package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver logs every event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer.
// A nil logger means slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelInfo
	if event.Type == EventFileSkipped {
		level = slog.LevelWarn
	}

	attrs := []any{
		"event", event.Type,
		"run_id", event.RunID,
	}
	if event.File != "" {
		attrs = append(attrs, "file", event.File)
	}

	switch data := event.Data.(type) {
	case RunInfo:
		attrs = append(attrs, "input_dir", data.InputDir, "files", data.Files, "max_columns", data.MaxColumns, "dry_run", data.DryRun)
	case FileInfo:
		attrs = append(attrs, "rows", data.Rows, "columns", data.Columns, "batches", data.Batches)
	case BatchInfo:
		attrs = append(attrs, "seq", data.Seq, "path", data.Path, "columns", len(data.Columns))
	case SkipInfo:
		attrs = append(attrs, "error", data.Err)
	case Summary:
		attrs = append(attrs, "files", data.Files, "skipped", data.Skipped, "outputs", data.Outputs, "duration", data.Duration)
	}

	lo.logger.Log(context.Background(), level, "pipeline_lifecycle", attrs...)
}
