package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/keys"
	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/record"
)

func idxAge() catalog.IndexMeta {
	return catalog.IndexMeta{Name: "idx_age", Table: "users", Column: "age"}
}

func putRow(t *testing.T, store kv.Store, table string, row record.Row) {
	t.Helper()
	b, err := record.EncodeRow(row)
	require.NoError(t, err)
	require.NoError(t, store.Put(keys.Row("kvsql", table, row.ID), b))
}

func rowWithAge(id string, age record.Value) record.Row {
	r := record.NewRow(id)
	r.Cols["age"] = age
	return r
}

func TestApplyInsertUpdateDelete(t *testing.T) {
	store := kv.NewMemory()
	m := NewMaintainer(store, "kvsql")
	im := idxAge()

	// insert
	require.NoError(t, m.Apply(im, record.Row{}, rowWithAge("1", record.NewInt(30))))
	ids, err := m.Lookup(im, record.NewInt(30))
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids)

	// update moves the entry
	require.NoError(t, m.Apply(im, rowWithAge("1", record.NewInt(30)), rowWithAge("1", record.NewInt(31))))
	ids, err = m.Lookup(im, record.NewInt(30))
	require.NoError(t, err)
	require.Empty(t, ids)
	ids, err = m.Lookup(im, record.NewInt(31))
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids)

	// delete removes it
	require.NoError(t, m.Apply(im, rowWithAge("1", record.NewInt(31)), record.Row{}))
	ids, err = m.Lookup(im, record.NewInt(31))
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestApplyNullHandling(t *testing.T) {
	store := kv.NewMemory()
	m := NewMaintainer(store, "kvsql")
	im := idxAge()

	// null values are never indexed
	require.NoError(t, m.Apply(im, record.Row{}, rowWithAge("1", record.Null())))
	require.Zero(t, store.Len())

	// null -> value adds an entry
	require.NoError(t, m.Apply(im, rowWithAge("1", record.Null()), rowWithAge("1", record.NewInt(5))))
	ids, err := m.Lookup(im, record.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids)

	// value -> null removes it
	require.NoError(t, m.Apply(im, rowWithAge("1", record.NewInt(5)), rowWithAge("1", record.Null())))
	require.Zero(t, store.Len())

	// looking up null matches nothing
	ids, err = m.Lookup(im, record.Null())
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestApplyUnchangedValueIsNoop(t *testing.T) {
	store := kv.NewMemory()
	m := NewMaintainer(store, "kvsql")
	im := idxAge()

	old := rowWithAge("1", record.NewInt(9))
	require.NoError(t, m.Apply(im, record.Row{}, old))
	before := store.Len()

	require.NoError(t, m.Apply(im, old, rowWithAge("1", record.NewInt(9))))
	require.Equal(t, before, store.Len())
}

func TestBackfillCountsNonNull(t *testing.T) {
	store := kv.NewMemory()
	m := NewMaintainer(store, "kvsql")
	im := idxAge()

	putRow(t, store, "users", rowWithAge("1", record.NewInt(30)))
	putRow(t, store, "users", rowWithAge("2", record.NewInt(30)))
	putRow(t, store, "users", rowWithAge("3", record.Null()))

	n, err := m.Backfill(im)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ids, err := m.Lookup(im, record.NewInt(30))
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, ids)
}

func TestDropEntries(t *testing.T) {
	store := kv.NewMemory()
	m := NewMaintainer(store, "kvsql")
	im := idxAge()

	require.NoError(t, m.Apply(im, record.Row{}, rowWithAge("1", record.NewInt(1))))
	require.NoError(t, m.Apply(im, record.Row{}, rowWithAge("2", record.NewInt(2))))

	n, err := m.DropEntries("users", "idx_age")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Zero(t, store.Len())
}

// A value that stringifies to "meta" must not disturb the index meta key,
// and lookups for it must not return the meta record.
func TestValueNamedMeta(t *testing.T) {
	store := kv.NewMemory()
	m := NewMaintainer(store, "kvsql")
	im := catalog.IndexMeta{Name: "idx_tag", Table: "t", Column: "tag"}

	require.NoError(t, store.Put(keys.IndexMeta("kvsql", "t", "idx_tag"), []byte(`{"name":"idx_tag"}`)))

	r := record.NewRow("1")
	r.Cols["tag"] = record.NewText("meta")
	require.NoError(t, m.Apply(im, record.Row{}, r))

	ids, err := m.Lookup(im, record.NewText("meta"))
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids)

	n, err := m.DropEntries("t", "idx_tag")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// meta key untouched
	_, ok, err := store.Get(keys.IndexMeta("kvsql", "t", "idx_tag"))
	require.NoError(t, err)
	require.True(t, ok)
}
