// Package report prints a human-readable progress report of a run.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/leengari/csvbreaker/internal/engine"
)

// Console is an engine observer that writes one line per step to w.
// Colors are used only when w is a terminal.
type Console struct {
	w       io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
}

// NewConsole creates a report writer for w
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		heading: r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("8")),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// OnEvent implements engine.Observer
func (c *Console) OnEvent(event engine.Event) {
	switch data := event.Data.(type) {
	case engine.RunInfo:
		if data.Files == 0 {
			c.line(c.warning, "Input folder exists but there are no CSV files.")
			return
		}
		c.line(c.heading, "Input folder has been validated")
		c.field("CSV File(s)", data.Files)
		c.field("Input Path", data.InputDir)
		c.field("Columns per file", data.MaxColumns)
		if data.DryRun {
			c.line(c.warning, "Dry run: nothing will be written.")
		}

	case engine.FileInfo:
		c.field("Total columns", data.Columns)
		c.field("Total rows", data.Rows)

	case engine.BatchInfo:
		name := filepath.Base(data.Path)
		if data.DryRun {
			c.line(c.label, name+" would be exported.")
		} else {
			c.line(c.success, name+" has been exported.")
		}

	case engine.SkipInfo:
		c.line(c.warning, fmt.Sprintf("Skipped %s: %v", filepath.Base(event.File), data.Err))

	case engine.Summary:
		if data.Files == 0 && data.Skipped == 0 {
			return
		}
		msg := fmt.Sprintf("Done: %d file(s), %d output(s)", data.Files, data.Outputs)
		if data.Skipped > 0 {
			msg += fmt.Sprintf(", %d skipped", data.Skipped)
		}
		c.line(c.heading, msg+" in "+data.Duration.Round(time.Millisecond).String())

	default:
		if event.Type == engine.EventFileStart {
			c.line(c.heading, "Processing "+filepath.Base(event.File))
		}
	}
}

func (c *Console) line(style lipgloss.Style, text string) {
	fmt.Fprintln(c.w, style.Render(text))
}

func (c *Console) field(name string, value interface{}) {
	fmt.Fprintln(c.w, c.label.Render(name+":"), value)
}
