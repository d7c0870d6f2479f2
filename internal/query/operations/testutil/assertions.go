package testutil

import (
	"reflect"
	"testing"

	"github.com/leengari/csvbreaker/internal/domain/schema"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if a table has the expected number of columns
func AssertColumnCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
}

// AssertColumnNames checks a header against the expected names, in order
func AssertColumnNames(t *testing.T, actual, expected []string, context string) {
	t.Helper()
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
	}
}

// FindColumn returns the column named name, failing the test if it is missing
func FindColumn(t *testing.T, table *schema.Table, name string) *schema.Column {
	t.Helper()
	for _, col := range table.Columns {
		if col.Name == name {
			return col
		}
	}
	t.Fatalf("column %q not found in %v", name, table.ColumnNames())
	return nil
}
