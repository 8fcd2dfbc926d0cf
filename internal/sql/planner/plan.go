package planner

import (
	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/parser"
)

// Plan is the interface for executable plans.
type Plan interface {
	planNode()
}

// IndexLookup is the point-lookup access path: scan one index for one exact
// value instead of scanning the whole table. The executor still re-evaluates
// the full WHERE against every candidate row.
type IndexLookup struct {
	Index catalog.IndexMeta
	Key   record.Value
}

// ----- Plan nodes -----

type CreateTablePlan struct {
	Table       string
	IfNotExists bool
	Schema      record.Schema
}

func (*CreateTablePlan) planNode() {}

type DropTablePlan struct {
	Table    string
	IfExists bool
}

func (*DropTablePlan) planNode() {}

type CreateIndexPlan struct {
	Meta catalog.IndexMeta
}

func (*CreateIndexPlan) planNode() {}

type DropIndexPlan struct {
	Index string
	Table string
}

func (*DropIndexPlan) planNode() {}

type InsertPlan struct {
	Table   string
	Columns []string
	Values  []record.Value
}

func (*InsertPlan) planNode() {}

type SelectPlan struct {
	Table   string
	Star    bool
	Columns []string
	Where   []parser.Condition
	OrderBy []parser.OrderKey
	Limit   int
	Offset  int
	Access  *IndexLookup // nil means full scan
}

func (*SelectPlan) planNode() {}

type UpdatePlan struct {
	Table       string
	Assignments []parser.Assignment
	Where       []parser.Condition
	Access      *IndexLookup
}

func (*UpdatePlan) planNode() {}

type DeletePlan struct {
	Table  string
	Where  []parser.Condition
	Access *IndexLookup
}

func (*DeletePlan) planNode() {}
