package catalog

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/tuannm99/kvsql/internal/keys"
	"github.com/tuannm99/kvsql/internal/kv"
)

// Store reads and writes catalog entries. It holds no cache: every lookup
// reflects the current KV state.
type Store struct {
	kv   kv.Store
	root string
}

func NewStore(store kv.Store, root string) *Store {
	return &Store{kv: store, root: root}
}

// Root returns the key namespace this catalog lives under.
func (s *Store) Root() string { return s.root }

// GetSchema returns the table's schema, or nil when the table does not exist.
func (s *Store) GetSchema(table string) (*TableMeta, error) {
	b, ok, err := s.kv.Get(keys.Schema(s.root, table))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var meta TableMeta
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, fmt.Errorf("catalog: decode schema for %s: %w", table, err)
	}
	return &meta, nil
}

// PutSchema persists a table's schema.
func (s *Store) PutSchema(meta TableMeta) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("catalog: encode schema for %s: %w", meta.Name, err)
	}
	return s.kv.Put(keys.Schema(s.root, meta.Name), b)
}

// DeleteSchema removes a table's schema entry.
func (s *Store) DeleteSchema(table string) error {
	return s.kv.Delete(keys.Schema(s.root, table))
}

// GetIndexes scans the table's index-meta namespace and returns every index,
// sorted by name.
func (s *Store) GetIndexes(table string) ([]IndexMeta, error) {
	entries, err := s.kv.Scan(keys.IndexesPrefix(s.root, table))
	if err != nil {
		return nil, err
	}

	var out []IndexMeta
	for _, e := range entries {
		segs, err := keys.Split(e.Key)
		if err != nil {
			return nil, err
		}
		if !keys.IsIndexMeta(segs) {
			continue
		}
		var im IndexMeta
		if err := json.Unmarshal(e.Value, &im); err != nil {
			return nil, fmt.Errorf("catalog: decode index meta for %s: %w", table, err)
		}
		out = append(out, im)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetIndex returns one index's metadata, or nil when absent.
func (s *Store) GetIndex(table, index string) (*IndexMeta, error) {
	b, ok, err := s.kv.Get(keys.IndexMeta(s.root, table, index))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var im IndexMeta
	if err := json.Unmarshal(b, &im); err != nil {
		return nil, fmt.Errorf("catalog: decode index meta %s.%s: %w", table, index, err)
	}
	return &im, nil
}

// PutIndex persists one index's metadata.
func (s *Store) PutIndex(im IndexMeta) error {
	b, err := json.Marshal(im)
	if err != nil {
		return fmt.Errorf("catalog: encode index meta %s.%s: %w", im.Table, im.Name, err)
	}
	return s.kv.Put(keys.IndexMeta(s.root, im.Table, im.Name), b)
}

// DeleteIndex removes one index's metadata entry.
func (s *Store) DeleteIndex(table, index string) error {
	return s.kv.Delete(keys.IndexMeta(s.root, table, index))
}
