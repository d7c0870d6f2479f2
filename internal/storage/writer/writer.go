package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
)

// Records is a table that can be serialized row by row
type Records interface {
	ColumnNames() []string
	RowCount() int
	Record(i int) []string
}

// SaveTable writes t to path as UTF-8 CSV with a header row.
// Rows go to a temp file in the same directory which is then renamed over
// path, so a failed write never leaves a partial file behind.
// A nil logger means slog.Default().
func SaveTable(t Records, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if t == nil || path == "" {
		return &domainerrors.WriteError{Path: path, Err: fmt.Errorf("nil table or missing path")}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return &domainerrors.WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &domainerrors.WriteError{Path: path, Err: err}
	}

	if err := writeRecords(tmp, t); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &domainerrors.WriteError{Path: path, Err: err}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &domainerrors.WriteError{Path: path, Err: err}
	}

	// Atomic replace
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &domainerrors.WriteError{Path: path, Err: fmt.Errorf("rename temp file: %w", err)}
	}

	logger.Debug("table saved",
		slog.String("path", path),
		slog.Int("columns", len(t.ColumnNames())),
		slog.Int("row_count", t.RowCount()),
	)

	return nil
}

func writeRecords(f *os.File, t Records) error {
	w := csv.NewWriter(f)

	if err := w.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < t.RowCount(); i++ {
		record := t.Record(i)

		// A lone empty field would be an empty line, which readers skip.
		if len(record) == 1 && record[0] == "" {
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
			if _, err := io.WriteString(f, "\"\"\n"); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
			continue
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	return w.Error()
}
