package run

import (
	"time"

	"github.com/google/uuid"
)

// Run identifies one invocation of the pipeline over an input directory
type Run struct {
	ID        string    // Unique run identifier, attached to logs and events
	InputDir  string    // Directory being processed
	StartTime time.Time // When the run began
	EndTime   time.Time // Zero until Finish is called
}

// New creates a run with a fresh ID
func New(inputDir string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		InputDir:  inputDir,
		StartTime: time.Now(),
	}
}

// Finish records the end time
func (r *Run) Finish() {
	r.EndTime = time.Now()
}

// Duration is the elapsed time so far, or the total once finished
func (r *Run) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
