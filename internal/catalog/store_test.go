package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/record"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(kv.NewMemory(), "kvsql")
}

func usersMeta() TableMeta {
	return TableMeta{
		Name: "users",
		Schema: record.Schema{Cols: []record.Column{
			{Name: "id", Type: record.TypeInteger, PrimaryKey: true},
			{Name: "name", Type: record.TypeText, Nullable: true},
		}},
	}
}

func TestSchemaPersistence(t *testing.T) {
	s := newStore(t)

	got, err := s.GetSchema("users")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, s.PutSchema(usersMeta()))

	got, err = s.GetSchema("users")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "users", got.Name)
	require.Equal(t, []string{"id", "name"}, got.Schema.ColNames())
	require.Equal(t, "id", got.Schema.PrimaryKey())

	require.NoError(t, s.DeleteSchema("users"))
	got, err = s.GetSchema("users")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestIndexMetaPersistence(t *testing.T) {
	s := newStore(t)

	idxs, err := s.GetIndexes("users")
	require.NoError(t, err)
	require.Empty(t, idxs)

	require.NoError(t, s.PutIndex(IndexMeta{Name: "idx_name", Table: "users", Column: "name"}))
	require.NoError(t, s.PutIndex(IndexMeta{Name: "idx_age", Table: "users", Column: "age"}))

	idxs, err = s.GetIndexes("users")
	require.NoError(t, err)
	require.Len(t, idxs, 2)
	// sorted by name
	require.Equal(t, "idx_age", idxs[0].Name)
	require.Equal(t, "idx_name", idxs[1].Name)

	one, err := s.GetIndex("users", "idx_age")
	require.NoError(t, err)
	require.NotNil(t, one)
	require.Equal(t, "age", one.Column)

	missing, err := s.GetIndex("users", "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, s.DeleteIndex("users", "idx_age"))
	idxs, err = s.GetIndexes("users")
	require.NoError(t, err)
	require.Len(t, idxs, 1)
}

func TestIndexesScopedPerTable(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.PutIndex(IndexMeta{Name: "i", Table: "a", Column: "x"}))

	idxs, err := s.GetIndexes("b")
	require.NoError(t, err)
	require.Empty(t, idxs)
}
