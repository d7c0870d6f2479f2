// Package batch splits a table into narrower output tables.
//
// The value columns (every column after the key) are partitioned into
// consecutive chunks of maxColumns-1 names. Each chunk becomes one output
// table holding the key column followed by the chunk, so every output is at
// most maxColumns wide and can be joined back on the key.
//
// A table with no value columns yields a single key-only output table.
package batch
