package testutil

import (
	"fmt"

	"github.com/leengari/csvbreaker/internal/domain/schema"
)

// CreateTable builds a table of TEXT columns from a header and rows
func CreateTable(name string, header []string, rows ...[]string) *schema.Table {
	columns := make([]*schema.Column, len(header))
	for j, colName := range header {
		col := schema.NewColumn(colName, schema.ColumnTypeText, len(rows))
		for _, row := range rows {
			col.Values = append(col.Values, row[j])
		}
		columns[j] = col
	}

	table, err := schema.NewTable(name, name+".csv", columns)
	if err != nil {
		panic(err)
	}
	return table
}

// CreateWideTable builds a table with an ID key and valueColumns FLOAT columns
// named C1..Cn. Cell (r, c) holds r*100+c.
func CreateWideTable(name string, valueColumns, rows int) *schema.Table {
	columns := make([]*schema.Column, 0, valueColumns+1)

	key := schema.NewColumn("ID", schema.ColumnTypeText, rows)
	for r := 0; r < rows; r++ {
		key.Values = append(key.Values, fmt.Sprintf("id-%03d", r))
	}
	columns = append(columns, key)

	for c := 1; c <= valueColumns; c++ {
		col := schema.NewColumn(fmt.Sprintf("C%d", c), schema.ColumnTypeFloat, rows)
		for r := 0; r < rows; r++ {
			col.Values = append(col.Values, float64(r*100+c))
		}
		columns = append(columns, col)
	}

	table, err := schema.NewTable(name, name+".csv", columns)
	if err != nil {
		panic(err)
	}
	return table
}
