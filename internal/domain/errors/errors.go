package errors

import (
	"fmt"
	"strings"
)

// ArgumentError reports an invalid command-line argument or setting.
// Nothing has been loaded or written when one of these is returned.
type ArgumentError struct {
	Argument string // argument or setting name, e.g. "max_columns"
	Value    string // offending value as given (may be empty)
	Reason   string // human-readable explanation
	Err      error  // underlying cause (optional)
}

func (e *ArgumentError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid argument %s", e.Argument))

	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// OutputDirectoryError is returned when the outputs directory cannot be
// removed or recreated.
type OutputDirectoryError struct {
	Path string
	Op   string // "remove" or "create"
	Err  error
}

func (e *OutputDirectoryError) Error() string {
	return fmt.Sprintf("cannot %s output directory %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputDirectoryError) Unwrap() error { return e.Err }

// LoadError describes a CSV input that could not be opened or parsed
type LoadError struct {
	Path   string // input file
	Line   int    // 1-based line number (0 if unknown)
	Column string // offending column name (empty if not column-specific)
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("cannot load %s", e.Path))

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column %q", e.Column))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *LoadError) Unwrap() error { return e.Err }

// WriteError describes an output file that could not be written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// NewDuplicateColumn reports a header that names the same column twice.
func NewDuplicateColumn(path, column string) *LoadError {
	return &LoadError{
		Path:   path,
		Line:   1,
		Column: column,
		Reason: "duplicate column name",
	}
}

// NewBlankColumn reports a header cell with no name.
func NewBlankColumn(path string, position int) *LoadError {
	return &LoadError{
		Path:   path,
		Line:   1,
		Reason: fmt.Sprintf("blank column name at position %d", position+1),
	}
}
