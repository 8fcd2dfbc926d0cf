// Package catalog persists table schemas and index metadata in the KV store.
package catalog

import (
	"github.com/tuannm99/kvsql/internal/record"
)

// TableMeta is the persisted schema of one table.
type TableMeta struct {
	Name   string        `json:"name"`
	Schema record.Schema `json:"schema"`
}

// IndexMeta describes one single-column secondary index.
type IndexMeta struct {
	Name   string `json:"name"`
	Table  string `json:"table"`
	Column string `json:"column"`
}
