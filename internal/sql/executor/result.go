package executor

import (
	"github.com/tuannm99/kvsql/internal/record"
)

// Result is the generic query result returned to the caller.
//
// Rows is populated only for SELECT; a projected column missing from a row
// is omitted from that row's map. Columns reflects the SELECT projection or,
// for CREATE TABLE, the declared columns.
type Result struct {
	Columns []string                  `json:"columns,omitempty"`
	Rows    []map[string]record.Value `json:"rows,omitempty"`

	// For DML and index DDL: rows inserted/updated/deleted, entries
	// backfilled or dropped.
	RowsAffected int64 `json:"rows_affected"`
}
