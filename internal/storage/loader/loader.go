package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
	"github.com/leengari/csvbreaker/internal/domain/schema"
)

// DefaultStringColumns are identifier-like columns that are never inferred as
// numbers, so values such as "01001" keep their leading zeros.
var DefaultStringColumns = []string{"FIPS", "ID"}

// Loader reads CSV files into tables
type Loader struct {
	stringColumns map[string]struct{}
	logger        *slog.Logger
}

// New creates a loader that forces the named columns to TEXT
func New(stringColumns []string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	set := make(map[string]struct{}, len(stringColumns))
	for _, name := range stringColumns {
		set[name] = struct{}{}
	}

	return &Loader{
		stringColumns: set,
		logger:        logger,
	}
}

// Load reads the CSV file at path, using its first row as the header.
// Column types are inferred from the cells, then every INT column is coerced
// to FLOAT. All failures are returned as *errors.LoadError.
func (l *Loader) Load(path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domainerrors.LoadError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	table, err := l.read(path, f)
	if err != nil {
		return nil, err
	}

	coerced := table.NormalizeNumeric()

	l.logger.Debug("table loaded",
		slog.String("table", table.Name),
		slog.String("path", path),
		slog.Int("rows", table.RowCount),
		slog.Int("columns", len(table.Columns)),
		slog.Any("coerced", coerced),
	)

	return table, nil
}

// read parses CSV from r without applying numeric coercion
func (l *Loader) read(path string, r io.Reader) (*schema.Table, error) {
	// A BOM selects the matching Unicode decoder; anything else passes through
	// untouched so invalid UTF-8 can be reported below.
	decoded := transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domainerrors.LoadError{Path: path, Reason: "missing header row"}
	}
	if err != nil {
		return nil, parseFailure(path, err)
	}

	if err := l.validateHeader(path, header); err != nil {
		return nil, err
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseFailure(path, err)
		}

		for i, field := range record {
			if !utf8.ValidString(field) {
				line, _ := reader.FieldPos(i)
				return nil, &domainerrors.LoadError{
					Path:   path,
					Line:   line,
					Column: header[i],
					Reason: "invalid UTF-8",
				}
			}
		}
		records = append(records, record)
	}

	columns := make([]*schema.Column, len(header))
	cells := make([]string, len(records))

	for j, name := range header {
		for i, record := range records {
			cells[i] = record[j]
		}

		colType := schema.ColumnTypeText
		if _, forced := l.stringColumns[name]; !forced {
			colType = InferType(cells)
		}

		col := schema.NewColumn(name, colType, len(records))
		for _, cell := range cells {
			col.Values = append(col.Values, parseCell(cell, colType))
		}
		columns[j] = col
	}

	table, err := schema.NewTable(TableName(path), path, columns)
	if err != nil {
		return nil, &domainerrors.LoadError{Path: path, Err: err}
	}
	return table, nil
}

func (l *Loader) validateHeader(path string, header []string) error {
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if !utf8.ValidString(name) {
			return &domainerrors.LoadError{Path: path, Line: 1, Reason: "invalid UTF-8 in header"}
		}
		if strings.TrimSpace(name) == "" {
			return domainerrors.NewBlankColumn(path, i)
		}
		if _, dup := seen[name]; dup {
			return domainerrors.NewDuplicateColumn(path, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// parseFailure converts an encoding/csv error into a LoadError carrying the line number
func parseFailure(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &domainerrors.LoadError{
			Path:   path,
			Line:   perr.Line,
			Reason: "malformed CSV",
			Err:    perr.Err,
		}
	}
	return &domainerrors.LoadError{Path: path, Reason: "read failed", Err: err}
}

// TableName is the file name without its extension
func TableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
