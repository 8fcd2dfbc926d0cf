package kvsql_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/kvsql"
	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/record"
)

func TestOpenAndExecute(t *testing.T) {
	db := kvsql.Open(kv.NewMemory())

	_, err := db.Execute("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, age INTEGER)")
	require.NoError(t, err)

	res, err := db.Execute("INSERT INTO users (id, name, age) VALUES (1, 'Alice', 30)")
	require.NoError(t, err)
	require.Equal(t, int64(1), res.RowsAffected)

	res, err = db.Execute("SELECT name FROM users WHERE age > 25")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, record.NewText("Alice"), res.Rows[0]["name"])
}

func TestRootNamespaceIsolation(t *testing.T) {
	store := kv.NewMemory()
	a := kvsql.Open(store, kvsql.WithRoot("tenant_a"))
	b := kvsql.Open(store, kvsql.WithRoot("tenant_b"))

	_, err := a.Execute("CREATE TABLE t (id INT PRIMARY KEY)")
	require.NoError(t, err)
	_, err = a.Execute("INSERT INTO t (id) VALUES (1)")
	require.NoError(t, err)

	// same table name is free in the other namespace
	_, err = b.Execute("CREATE TABLE t (id INT PRIMARY KEY)")
	require.NoError(t, err)
	res, err := b.Execute("SELECT * FROM t")
	require.NoError(t, err)
	require.Empty(t, res.Rows)
}

func TestSequentialStatements(t *testing.T) {
	db := kvsql.Open(kv.NewMemory(), kvsql.WithIDGenerator(&record.SeqIDGenerator{}))

	stmts := []string{
		"CREATE TABLE kvs (k TEXT PRIMARY KEY, v TEXT)",
		"INSERT INTO kvs (k, v) VALUES ('a', '1')",
		"INSERT INTO kvs (k, v) VALUES ('b', '2')",
		"UPDATE kvs SET v = '3' WHERE k = 'a'",
		"DELETE FROM kvs WHERE k = 'b'",
	}
	for _, s := range stmts {
		_, err := db.Execute(s)
		require.NoError(t, err, s)
	}

	res, err := db.Execute("SELECT k, v FROM kvs")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, record.NewText("3"), res.Rows[0]["v"])
}
