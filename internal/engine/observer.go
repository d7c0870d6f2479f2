package engine

import "time"

// EventType represents the phases of a run
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventFileStart    EventType = "file_start"
	EventFileLoaded   EventType = "file_loaded"
	EventBatchWritten EventType = "batch_written"
	EventFileEnd      EventType = "file_end"
	EventFileSkipped  EventType = "file_skipped"
	EventRunEnd       EventType = "run_end"
)

// Event represents a lifecycle event of a run
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Run ID for tracing
	Timestamp time.Time   // When the event occurred
	File      string      // Input file (empty for run-level events)
	Data      interface{} // Phase-specific payload, see the *Info types
}

// RunInfo is the payload of EventRunStart
type RunInfo struct {
	InputDir   string
	Files      int
	MaxColumns int
	DryRun     bool
}

// FileInfo is the payload of EventFileLoaded
type FileInfo struct {
	Table   string
	Rows    int
	Columns int
	Batches int
}

// BatchInfo is the payload of EventBatchWritten
type BatchInfo struct {
	Seq     int
	Path    string
	Columns []string
	Rows    int
	DryRun  bool
}

// SkipInfo is the payload of EventFileSkipped
type SkipInfo struct {
	Err error
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}
