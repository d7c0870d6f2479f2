package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
	"github.com/leengari/csvbreaker/internal/domain/run"
	"github.com/leengari/csvbreaker/internal/query/operations/batch"
	"github.com/leengari/csvbreaker/internal/storage/loader"
	"github.com/leengari/csvbreaker/internal/storage/manager"
	"github.com/leengari/csvbreaker/internal/storage/writer"
)

// Options control how each input file is split
type Options struct {
	MaxColumns      int      // widest output table, key column included; must be > 1
	StringColumns   []string // columns never inferred as numbers
	ContinueOnError bool     // skip unloadable files instead of aborting the run
	DryRun          bool     // load and batch, but write nothing
}

// Summary describes a finished run
type Summary struct {
	RunID    string
	Files    int // input files fully processed
	Skipped  int // input files skipped because they failed to load
	Outputs  int // output tables produced
	Duration time.Duration
}

// Engine splits every CSV file of a workspace into narrower CSV files.
// Files are processed one at a time, in order.
type Engine struct {
	workspace *manager.Workspace
	loader    *loader.Loader
	opts      Options
	logger    *slog.Logger
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine instance
func New(ws *manager.Workspace, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		workspace: ws,
		loader:    loader.New(opts.StringColumns, logger),
		opts:      opts,
		logger:    logger,
		observers: make([]Observer, 0),
	}
}

// Run processes the workspace. With no CSV files it returns an empty summary
// and leaves the output directory alone. Otherwise the output directory is
// reset (unless DryRun) and every file is loaded, batched and written.
// The first load or write failure ends the run; with ContinueOnError, load
// failures skip the file instead.
func (e *Engine) Run() (*Summary, error) {
	if e.opts.MaxColumns <= 1 {
		return nil, &domainerrors.ArgumentError{
			Argument: "max_columns",
			Value:    strconv.Itoa(e.opts.MaxColumns),
			Reason:   "must be an integer greater than 1",
		}
	}

	r := run.New(e.workspace.InputDir)
	logger := e.logger.With(slog.String("run_id", r.ID))
	summary := &Summary{RunID: r.ID}

	files, err := e.workspace.DiscoverCSVFiles()
	if err != nil {
		return nil, err
	}

	e.notify(Event{Type: EventRunStart, RunID: r.ID, Data: RunInfo{
		InputDir:   e.workspace.InputDir,
		Files:      len(files),
		MaxColumns: e.opts.MaxColumns,
		DryRun:     e.opts.DryRun,
	}})

	defer func() {
		r.Finish()
		summary.Duration = r.Duration()
		e.notify(Event{Type: EventRunEnd, RunID: r.ID, Data: *summary})
	}()

	if len(files) == 0 {
		logger.Info("no CSV files found", slog.String("input_dir", e.workspace.InputDir))
		return summary, nil
	}

	if !e.opts.DryRun {
		if err := e.workspace.ResetOutputDir(logger); err != nil {
			return summary, err
		}
	}

	for _, path := range files {
		outputs, err := e.processFile(r, logger, path)
		summary.Outputs += outputs

		if err != nil {
			var loadErr *domainerrors.LoadError
			if e.opts.ContinueOnError && errors.As(err, &loadErr) {
				logger.Warn("skipping file", slog.String("file", path), slog.Any("error", err))
				e.notify(Event{Type: EventFileSkipped, RunID: r.ID, File: path, Data: SkipInfo{Err: err}})
				summary.Skipped++
				continue
			}
			return summary, err
		}
		summary.Files++
	}

	return summary, nil
}

// processFile loads one file and writes its output tables.
// Returns the number of output tables written.
func (e *Engine) processFile(r *run.Run, logger *slog.Logger, path string) (int, error) {
	e.notify(Event{Type: EventFileStart, RunID: r.ID, File: path})

	table, err := e.loader.Load(path)
	if err != nil {
		return 0, err
	}

	outputs := batch.Collect(table, e.opts.MaxColumns)

	e.notify(Event{Type: EventFileLoaded, RunID: r.ID, File: path, Data: FileInfo{
		Table:   table.Name,
		Rows:    table.RowCount,
		Columns: len(table.Columns),
		Batches: len(outputs),
	}})

	written := 0
	for _, out := range outputs {
		outPath := e.workspace.OutputPath(out.Source(), out.Seq())

		if !e.opts.DryRun {
			if err := writer.SaveTable(out, outPath, logger); err != nil {
				return written, fmt.Errorf("batch %d of %s: %w", out.Seq(), out.Source(), err)
			}
		}
		written++

		e.notify(Event{Type: EventBatchWritten, RunID: r.ID, File: path, Data: BatchInfo{
			Seq:     out.Seq(),
			Path:    outPath,
			Columns: out.ColumnNames(),
			Rows:    out.RowCount(),
			DryRun:  e.opts.DryRun,
		}})
	}

	e.notify(Event{Type: EventFileEnd, RunID: r.ID, File: path})
	return written, nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// notify stamps the event and sends it to all registered observers
func (e *Engine) notify(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
