// Package index maintains single-column secondary indexes.
//
// An index entry maps (table, index, stringified value, row id) to the row
// id. Entries exist only for non-null values, and must hold exactly when the
// row holds, immediately after every mutation.
package index

import (
	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/keys"
	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/record"
)

// Maintainer creates, drops, and incrementally updates index entries.
type Maintainer struct {
	kv   kv.Store
	root string
}

func NewMaintainer(store kv.Store, root string) *Maintainer {
	return &Maintainer{kv: store, root: root}
}

// Apply moves an index entry across a row mutation. old and new carry the
// row before and after; a zero Row (no id) on either side signals insertion
// or deletion. Unchanged values are not rewritten.
func (m *Maintainer) Apply(im catalog.IndexMeta, old, new record.Row) error {
	oldVal := old.Get(im.Column)
	newVal := new.Get(im.Column)

	if old.ID == new.ID && record.Equal(oldVal, newVal) {
		return nil
	}

	if old.ID != "" && !oldVal.IsNull() {
		key := keys.IndexEntry(m.root, im.Table, im.Name, oldVal.String(), old.ID)
		if err := m.kv.Delete(key); err != nil {
			return err
		}
	}
	if new.ID != "" && !newVal.IsNull() {
		key := keys.IndexEntry(m.root, im.Table, im.Name, newVal.String(), new.ID)
		if err := m.kv.Put(key, []byte(new.ID)); err != nil {
			return err
		}
	}
	return nil
}

// Backfill writes one entry per existing row with a non-null value in the
// indexed column. Returns the number of entries written.
func (m *Maintainer) Backfill(im catalog.IndexMeta) (int, error) {
	entries, err := m.kv.Scan(keys.RowPrefix(m.root, im.Table))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, e := range entries {
		row, err := record.DecodeRow(e.Value)
		if err != nil {
			return count, err
		}
		v := row.Get(im.Column)
		if v.IsNull() {
			continue
		}
		key := keys.IndexEntry(m.root, im.Table, im.Name, v.String(), row.ID)
		if err := m.kv.Put(key, []byte(row.ID)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// DropEntries removes every entry of one index, leaving its meta key to the
// catalog. Returns the number of entries removed.
func (m *Maintainer) DropEntries(table, index string) (int, error) {
	entries, err := m.kv.Scan(keys.IndexPrefix(m.root, table, index))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, e := range entries {
		segs, err := keys.Split(e.Key)
		if err != nil {
			return count, err
		}
		if !keys.IsIndexEntry(segs) {
			continue
		}
		if err := m.kv.Delete(e.Key); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Lookup returns the row ids indexed under one exact value, in key order.
func (m *Maintainer) Lookup(im catalog.IndexMeta, value record.Value) ([]string, error) {
	if value.IsNull() {
		return nil, nil
	}
	entries, err := m.kv.Scan(keys.IndexValuePrefix(m.root, im.Table, im.Name, value.String()))
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		segs, err := keys.Split(e.Key)
		if err != nil {
			return nil, err
		}
		// the value prefix can graze the meta key when the stringified
		// value is literally "meta"
		if !keys.IsIndexEntry(segs) || segs[4] != value.String() {
			continue
		}
		ids = append(ids, segs[5])
	}
	return ids, nil
}
