package parser

import (
	"github.com/tuannm99/kvsql/internal/record"
)

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE / DROP TABLE -----

type ColumnDef struct {
	Name       string
	Type       record.ColumnType
	PrimaryKey bool
	NotNull    bool
}

type CreateTableStmt struct {
	Table       string
	IfNotExists bool
	Columns     []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

type DropTableStmt struct {
	Table    string
	IfExists bool
}

func (*DropTableStmt) stmtNode() {}

// ----- CREATE INDEX / DROP INDEX -----

type CreateIndexStmt struct {
	Index  string
	Table  string
	Column string
}

func (*CreateIndexStmt) stmtNode() {}

type DropIndexStmt struct {
	Index string
	Table string
}

func (*DropIndexStmt) stmtNode() {}

// ----- INSERT -----

type InsertStmt struct {
	Table   string
	Columns []string // nil means "use schema order"
	Values  []record.Value
}

func (*InsertStmt) stmtNode() {}

// ----- WHERE -----

// CompareOp is one WHERE operator. "<>" is normalized to "!=" at parse time.
type CompareOp string

const (
	OpEq      CompareOp = "="
	OpNe      CompareOp = "!="
	OpGt      CompareOp = ">"
	OpGe      CompareOp = ">="
	OpLt      CompareOp = "<"
	OpLe      CompareOp = "<="
	OpLike    CompareOp = "LIKE"
	OpNotLike CompareOp = "NOT LIKE"
)

// Condition is one "column op literal" triple. A WHERE clause is an
// AND-only conjunction of these; there is no OR, NOT, or grouping.
type Condition struct {
	Column string
	Op     CompareOp
	Value  record.Value
}

// ----- SELECT -----

type OrderKey struct {
	Column string
	Desc   bool
}

type SelectStmt struct {
	Table   string
	Star    bool
	Columns []string // empty when Star
	Where   []Condition
	OrderBy []OrderKey
	Limit   int // -1 when absent
	Offset  int // 0 when absent
}

func (*SelectStmt) stmtNode() {}

// ----- UPDATE / DELETE -----

type Assignment struct {
	Column string
	Value  record.Value
}

type UpdateStmt struct {
	Table       string
	Assignments []Assignment
	Where       []Condition
}

func (*UpdateStmt) stmtNode() {}

type DeleteStmt struct {
	Table string
	Where []Condition
}

func (*DeleteStmt) stmtNode() {}
