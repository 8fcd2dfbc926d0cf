// Package keys encodes the composite KV keys used by the SQL layer.
//
// Every key is a sequence of uvarint length-prefixed segments. A naive
// delimiter join would break as soon as an indexed value or row id contains
// the delimiter byte; length prefixes make any byte content safe, and an
// encoded segment list is always a byte prefix of every key that extends it,
// which is exactly what prefix scans need.
//
// Layout under a configurable root segment:
//
//	(root, table, "schema")                     table schema
//	(root, table, "rows", rowID)                one row
//	(root, table, "indexes", name, "meta")      index metadata
//	(root, table, "indexes", name, value, id)   one index entry
//
// Index meta and index entries share the (root, table, "indexes", name)
// prefix; they are told apart by segment count (5 vs 6).
package keys

import (
	"encoding/binary"
	"fmt"
)

const (
	segSchema  = "schema"
	segRows    = "rows"
	segIndexes = "indexes"
	segMeta    = "meta"
)

// Encode joins segments into a single key.
func Encode(segments ...string) []byte {
	var out []byte
	for _, s := range segments {
		out = binary.AppendUvarint(out, uint64(len(s)))
		out = append(out, s...)
	}
	return out
}

// Split decodes a key back into its segments.
func Split(key []byte) ([]string, error) {
	var segs []string
	for len(key) > 0 {
		n, w := binary.Uvarint(key)
		if w <= 0 || uint64(len(key)-w) < n {
			return nil, fmt.Errorf("keys: corrupt key segment")
		}
		segs = append(segs, string(key[w:w+int(n)]))
		key = key[w+int(n):]
	}
	return segs, nil
}

// Schema returns the key holding table's serialized schema.
func Schema(root, table string) []byte {
	return Encode(root, table, segSchema)
}

// Row returns the key holding one row.
func Row(root, table, rowID string) []byte {
	return Encode(root, table, segRows, rowID)
}

// RowPrefix covers every row of table.
func RowPrefix(root, table string) []byte {
	return Encode(root, table, segRows)
}

// TablePrefix covers everything belonging to table: schema, rows, indexes.
func TablePrefix(root, table string) []byte {
	return Encode(root, table)
}

// IndexMeta returns the key holding one index's metadata.
func IndexMeta(root, table, index string) []byte {
	return Encode(root, table, segIndexes, index, segMeta)
}

// IndexesPrefix covers the metadata and entries of every index on table.
func IndexesPrefix(root, table string) []byte {
	return Encode(root, table, segIndexes)
}

// IndexPrefix covers one index: its meta key and all entries.
func IndexPrefix(root, table, index string) []byte {
	return Encode(root, table, segIndexes, index)
}

// IndexValuePrefix covers the entries of one index for one stringified value.
func IndexValuePrefix(root, table, index, value string) []byte {
	return Encode(root, table, segIndexes, index, value)
}

// IndexEntry returns the key of a single index entry.
func IndexEntry(root, table, index, value, rowID string) []byte {
	return Encode(root, table, segIndexes, index, value, rowID)
}

// IsIndexMeta reports whether the decoded segments name an index-meta key.
func IsIndexMeta(segs []string) bool {
	return len(segs) == 5 && segs[2] == segIndexes && segs[4] == segMeta
}

// IsIndexEntry reports whether the decoded segments name an index entry.
// The trailing segments are (value, rowID).
func IsIndexEntry(segs []string) bool {
	return len(segs) == 6 && segs[2] == segIndexes
}

// IsRow reports whether the decoded segments name a row key.
func IsRow(segs []string) bool {
	return len(segs) == 4 && segs[2] == segRows
}
