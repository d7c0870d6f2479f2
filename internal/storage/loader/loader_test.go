package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
	"github.com/leengari/csvbreaker/internal/domain/schema"
	"github.com/leengari/csvbreaker/internal/query/operations/testutil"
)

// writeCSV creates name in a temp directory with the given contents
func writeCSV(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func requireLoadError(t *testing.T, err error) *domainerrors.LoadError {
	t.Helper()
	var loadErr *domainerrors.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T: %v", err, err)
	}
	return loadErr
}

func TestLoadInfersAndCoerces(t *testing.T) {
	path := writeCSV(t, "counties.csv",
		"FIPS,population,ratio,name\n"+
			"01001,1,0.5,Autauga\n"+
			"01003,2,1.25,Baldwin\n"+
			"01005,3,2,Barbour\n")

	table, err := New(DefaultStringColumns, nil).Load(path)
	assert.NilError(t, err)

	assert.Equal(t, table.Name, "counties")
	assert.Equal(t, table.RowCount, 3)
	assert.DeepEqual(t, table.ColumnNames(), []string{"FIPS", "population", "ratio", "name"})

	fips := testutil.FindColumn(t, table, "FIPS")
	assert.Equal(t, fips.Type, schema.ColumnTypeText)
	assert.DeepEqual(t, fips.Values, []interface{}{"01001", "01003", "01005"})

	population := testutil.FindColumn(t, table, "population")
	assert.Equal(t, population.Type, schema.ColumnTypeFloat)
	assert.DeepEqual(t, population.Values, []interface{}{1.0, 2.0, 3.0})

	ratio := testutil.FindColumn(t, table, "ratio")
	assert.Equal(t, ratio.Type, schema.ColumnTypeFloat)
	assert.DeepEqual(t, ratio.Values, []interface{}{0.5, 1.25, 2.0})

	name := testutil.FindColumn(t, table, "name")
	assert.Equal(t, name.Type, schema.ColumnTypeText)

	assert.DeepEqual(t, table.Record(0), []string{"01001", "1.0", "0.5", "Autauga"})
}

func TestLoadWithoutStringHints(t *testing.T) {
	path := writeCSV(t, "ids.csv", "ID,v\n007,1\n")

	table, err := New(nil, nil).Load(path)
	assert.NilError(t, err)

	id := testutil.FindColumn(t, table, "ID")
	assert.Equal(t, id.Type, schema.ColumnTypeFloat)
	assert.DeepEqual(t, table.Record(0), []string{"7.0", "1.0"})
}

func TestLoadNullCells(t *testing.T) {
	path := writeCSV(t, "gaps.csv", "ID,n,empty\na,1,\nb,,\nc,3,\n")

	table, err := New(DefaultStringColumns, nil).Load(path)
	assert.NilError(t, err)

	n := testutil.FindColumn(t, table, "n")
	assert.Equal(t, n.Type, schema.ColumnTypeFloat)
	assert.DeepEqual(t, n.Values, []interface{}{1.0, nil, 3.0})

	empty := testutil.FindColumn(t, table, "empty")
	assert.Equal(t, empty.Type, schema.ColumnTypeText)
	assert.DeepEqual(t, table.Record(1), []string{"b", "", ""})
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeCSV(t, "header.csv", "ID,A,B\n")

	table, err := New(DefaultStringColumns, nil).Load(path)
	assert.NilError(t, err)
	assert.Equal(t, table.RowCount, 0)
	assert.DeepEqual(t, table.ColumnNames(), []string{"ID", "A", "B"})
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	path := writeCSV(t, "bom.csv", "\xEF\xBB\xBFID,A\nx,1\n")

	table, err := New(DefaultStringColumns, nil).Load(path)
	assert.NilError(t, err)
	assert.Equal(t, table.Key().Name, "ID")
	assert.Equal(t, table.Key().Type, schema.ColumnTypeText)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		line     int
		reason   string
	}{
		{name: "empty file", contents: "", reason: "missing header row"},
		{name: "duplicate column", contents: "ID,A,A\n1,2,3\n", line: 1, reason: "duplicate column name"},
		{name: "blank column", contents: "ID,,B\n1,2,3\n", line: 1, reason: "blank column name at position 2"},
		{name: "ragged row", contents: "ID,A\n1,2\n3\n", line: 3, reason: "malformed CSV"},
		{name: "bare quote", contents: "ID,A\n1,a\"b\n", line: 2, reason: "malformed CSV"},
		{name: "invalid utf8", contents: "ID,A\n1,\xff\xfe\xfd\n", line: 2, reason: "invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "bad.csv", tt.contents)

			_, err := New(DefaultStringColumns, nil).Load(path)

			loadErr := requireLoadError(t, err)
			assert.Equal(t, loadErr.Path, path)
			assert.Equal(t, loadErr.Line, tt.line)
			assert.Equal(t, loadErr.Reason, tt.reason)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(nil, nil).Load(filepath.Join(t.TempDir(), "nope.csv"))

	requireLoadError(t, err)
	assert.Assert(t, errors.Is(err, fs.ErrNotExist))
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  schema.ColumnType
	}{
		{"integers", []string{"1", "-2", "30"}, schema.ColumnTypeInt},
		{"integers with nulls", []string{"1", "", "3"}, schema.ColumnTypeInt},
		{"mixed int and float", []string{"1", "2.5"}, schema.ColumnTypeFloat},
		{"exponent", []string{"1e3", "2"}, schema.ColumnTypeFloat},
		{"text wins", []string{"1", "abc"}, schema.ColumnTypeText},
		{"all empty", []string{"", ""}, schema.ColumnTypeText},
		{"no rows", nil, schema.ColumnTypeText},
		{"nan stays text", []string{"NaN"}, schema.ColumnTypeText},
		{"inf stays text", []string{"inf"}, schema.ColumnTypeText},
		{"hex stays text", []string{"0x1p-2"}, schema.ColumnTypeText},
		{"lone sign", []string{"-"}, schema.ColumnTypeText},
		{"padded number", []string{" 5"}, schema.ColumnTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, InferType(tt.cells), tt.want)
		})
	}
}

func TestTableName(t *testing.T) {
	assert.Equal(t, TableName("/data/in/sales_2024.csv"), "sales_2024")
	assert.Equal(t, TableName("plain"), "plain")
}
