package schema

import "fmt"

// Table is an in-memory CSV file: ordered, uniquely named columns of equal length.
// The first column is the key column; all others are value columns.
type Table struct {
	Name     string // file name without extension
	Path     string // source file path
	Columns  []*Column
	RowCount int
}

// NewTable assembles a table and checks its invariants
func NewTable(name, path string, columns []*Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", name)
	}

	seen := make(map[string]struct{}, len(columns))
	rows := columns[0].Len()

	for _, col := range columns {
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("table %s: duplicate column %q", name, col.Name)
		}
		seen[col.Name] = struct{}{}

		if col.Len() != rows {
			return nil, fmt.Errorf("table %s: column %q has %d values, expected %d",
				name, col.Name, col.Len(), rows)
		}
	}

	return &Table{
		Name:     name,
		Path:     path,
		Columns:  columns,
		RowCount: rows,
	}, nil
}

// Key returns the first column
func (t *Table) Key() *Column {
	return t.Columns[0]
}

// ValueColumns returns every column after the key, in table order
func (t *Table) ValueColumns() []*Column {
	return t.Columns[1:]
}

// ColumnNames returns the header in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// NormalizeNumeric coerces every INT column to FLOAT in place.
// Returns the names of the columns that changed type.
func (t *Table) NormalizeNumeric() []string {
	var coerced []string
	for _, col := range t.Columns {
		if col.CoerceToFloat() {
			coerced = append(coerced, col.Name)
		}
	}
	return coerced
}

// Record returns row i formatted as CSV fields
func (t *Table) Record(i int) []string {
	record := make([]string, len(t.Columns))
	for j, col := range t.Columns {
		record[j] = col.Format(i)
	}
	return record
}
