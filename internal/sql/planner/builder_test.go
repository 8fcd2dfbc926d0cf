package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/parser"
)

type fakeIndexes map[string][]catalog.IndexMeta

func (f fakeIndexes) GetIndexes(table string) ([]catalog.IndexMeta, error) {
	return f[table], nil
}

func mustParse(t *testing.T, sql string) parser.Statement {
	t.Helper()
	stmt, err := parser.Parse(sql)
	require.NoError(t, err)
	return stmt
}

func TestBuildCreateTableSchema(t *testing.T) {
	p, err := Build(mustParse(t, "CREATE TABLE t (id INT PRIMARY KEY, name TEXT, age INT NOT NULL)"), nil)
	require.NoError(t, err)

	ct := p.(*CreateTablePlan)
	require.Equal(t, "t", ct.Table)
	require.Equal(t, []record.Column{
		{Name: "id", Type: record.TypeInteger, Nullable: false, PrimaryKey: true},
		{Name: "name", Type: record.TypeText, Nullable: true},
		{Name: "age", Type: record.TypeInteger, Nullable: false},
	}, ct.Schema.Cols)
}

func TestSelectPicksIndexOnEquality(t *testing.T) {
	idx := fakeIndexes{"users": {{Name: "idx_age", Table: "users", Column: "age"}}}

	p, err := Build(mustParse(t, "SELECT * FROM users WHERE age = 30"), idx)
	require.NoError(t, err)

	sel := p.(*SelectPlan)
	require.NotNil(t, sel.Access)
	require.Equal(t, "idx_age", sel.Access.Index.Name)
	require.Equal(t, record.NewInt(30), sel.Access.Key)
}

func TestSelectFullScanWhenNoEqualityOnIndexedColumn(t *testing.T) {
	idx := fakeIndexes{"users": {{Name: "idx_age", Table: "users", Column: "age"}}}

	// range condition: no point lookup
	p, err := Build(mustParse(t, "SELECT * FROM users WHERE age > 30"), idx)
	require.NoError(t, err)
	require.Nil(t, p.(*SelectPlan).Access)

	// equality but on a non-indexed column
	p, err = Build(mustParse(t, "SELECT * FROM users WHERE name = 'x'"), idx)
	require.NoError(t, err)
	require.Nil(t, p.(*SelectPlan).Access)

	// equality against NULL never uses the index (nulls are not indexed)
	p, err = Build(mustParse(t, "SELECT * FROM users WHERE age = NULL"), idx)
	require.NoError(t, err)
	require.Nil(t, p.(*SelectPlan).Access)

	// no WHERE at all
	p, err = Build(mustParse(t, "SELECT * FROM users"), idx)
	require.NoError(t, err)
	require.Nil(t, p.(*SelectPlan).Access)
}

func TestAccessUsesFirstEqualityCondition(t *testing.T) {
	idx := fakeIndexes{"users": {
		{Name: "idx_age", Table: "users", Column: "age"},
		{Name: "idx_name", Table: "users", Column: "name"},
	}}

	p, err := Build(mustParse(t, "SELECT * FROM users WHERE name = 'x' AND age = 1"), idx)
	require.NoError(t, err)

	sel := p.(*SelectPlan)
	require.NotNil(t, sel.Access)
	require.Equal(t, "idx_name", sel.Access.Index.Name)
}

func TestUpdateDeleteShareAccessChoice(t *testing.T) {
	idx := fakeIndexes{"users": {{Name: "idx_age", Table: "users", Column: "age"}}}

	p, err := Build(mustParse(t, "UPDATE users SET name = 'y' WHERE age = 7"), idx)
	require.NoError(t, err)
	require.NotNil(t, p.(*UpdatePlan).Access)

	p, err = Build(mustParse(t, "DELETE FROM users WHERE age = 7"), idx)
	require.NoError(t, err)
	require.NotNil(t, p.(*DeletePlan).Access)

	p, err = Build(mustParse(t, "DELETE FROM users"), idx)
	require.NoError(t, err)
	require.Nil(t, p.(*DeletePlan).Access)
}
