package batch

import (
	"fmt"
	"iter"
	"slices"

	"github.com/leengari/csvbreaker/internal/domain/schema"
)

// OutputTable is the key column plus one batch of value columns.
// It shares column storage with its source table and is read-only.
type OutputTable struct {
	seq      int
	source   string
	columns  []*schema.Column
	rowCount int
}

// Seq is the 1-based position of this output among its table's batches
func (o *OutputTable) Seq() int {
	return o.seq
}

// Source is the name of the table the output was cut from
func (o *OutputTable) Source() string {
	return o.source
}

// ColumnNames returns the output header
func (o *OutputTable) ColumnNames() []string {
	names := make([]string, len(o.columns))
	for i, col := range o.columns {
		names[i] = col.Name
	}
	return names
}

func (o *OutputTable) RowCount() int {
	return o.rowCount
}

// Record returns row i formatted as CSV fields
func (o *OutputTable) Record(i int) []string {
	record := make([]string, len(o.columns))
	for j, col := range o.columns {
		record[j] = col.Format(i)
	}
	return record
}

// Partition splits items into consecutive chunks of size, preserving order.
// The last chunk holds the remainder. An empty input yields one empty chunk.
func Partition[T any](items []T, size int) [][]T {
	if size < 1 {
		panic(fmt.Sprintf("batch: chunk size must be positive, got %d", size))
	}
	if len(items) == 0 {
		return [][]T{{}}
	}

	chunks := make([][]T, 0, Count(len(items), size+1))
	for chunk := range slices.Chunk(items, size) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Count returns how many output tables a table with valueColumns value
// columns produces for maxColumns.
func Count(valueColumns, maxColumns int) int {
	size := maxColumns - 1
	if valueColumns == 0 {
		return 1
	}
	return (valueColumns + size - 1) / size
}

// Batches yields the output tables for table in order, numbered from 1.
// maxColumns must be greater than 1; callers validate it first, and a smaller
// value panics.
func Batches(table *schema.Table, maxColumns int) iter.Seq[*OutputTable] {
	if maxColumns <= 1 {
		panic(fmt.Sprintf("batch: maxColumns must be greater than 1, got %d", maxColumns))
	}

	key := table.Key()
	chunks := Partition(table.ValueColumns(), maxColumns-1)

	return func(yield func(*OutputTable) bool) {
		for i, chunk := range chunks {
			columns := make([]*schema.Column, 0, len(chunk)+1)
			columns = append(columns, key)
			columns = append(columns, chunk...)

			out := &OutputTable{
				seq:      i + 1,
				source:   table.Name,
				columns:  columns,
				rowCount: table.RowCount,
			}
			if !yield(out) {
				return
			}
		}
	}
}

// Collect materializes every output table for table
func Collect(table *schema.Table, maxColumns int) []*OutputTable {
	return slices.Collect(Batches(table, maxColumns))
}
