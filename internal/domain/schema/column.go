package schema

import (
	"math"
	"strconv"
	"strings"
)

type ColumnType string

const (
	ColumnTypeText  ColumnType = "TEXT"
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
)

// Column is a named, homogeneously typed sequence of cell values.
// A nil entry is a null cell; otherwise the dynamic type matches Type:
// string for TEXT, int64 for INT, float64 for FLOAT.
type Column struct {
	Name   string
	Type   ColumnType
	Values []interface{}
}

// NewColumn creates an empty column with capacity for n values
func NewColumn(name string, colType ColumnType, n int) *Column {
	return &Column{
		Name:   name,
		Type:   colType,
		Values: make([]interface{}, 0, n),
	}
}

// Len returns the number of cells in the column
func (c *Column) Len() int {
	return len(c.Values)
}

// CoerceToFloat retypes an INT column to FLOAT in place.
// Name and null cells are kept. Returns false (and changes nothing) for any
// other column type, so calling it twice is a no-op.
func (c *Column) CoerceToFloat() bool {
	if c.Type != ColumnTypeInt {
		return false
	}

	for i, v := range c.Values {
		if iv, ok := v.(int64); ok {
			c.Values[i] = float64(iv)
		}
	}
	c.Type = ColumnTypeFloat
	return true
}

// Format returns the CSV text for the cell at row i
func (c *Column) Format(i int) string {
	return FormatValue(c.Values[i])
}

// FormatValue renders a cell value as CSV text. Nulls become empty strings.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return FormatFloat(val)
	default:
		return ""
	}
}

// FormatFloat renders a float so that whole numbers keep a fractional part
// ("1.0" rather than "1") and every value parses back to the same float64.
func FormatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
