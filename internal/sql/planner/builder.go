// Package planner builds a physical plan from a parsed statement.
//
// The only planning decision is the access path: an equality condition on an
// indexed column turns a full table scan into an index point-lookup.
package planner

import (
	"fmt"

	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/parser"
)

// IndexLister is the slice of the catalog the planner needs.
type IndexLister interface {
	GetIndexes(table string) ([]catalog.IndexMeta, error)
}

// Build turns a parsed statement into a plan.
func Build(stmt parser.Statement, idx IndexLister) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return buildCreateTable(s)
	case *parser.DropTableStmt:
		return &DropTablePlan{Table: s.Table, IfExists: s.IfExists}, nil
	case *parser.CreateIndexStmt:
		return &CreateIndexPlan{Meta: catalog.IndexMeta{
			Name:   s.Index,
			Table:  s.Table,
			Column: s.Column,
		}}, nil
	case *parser.DropIndexStmt:
		return &DropIndexPlan{Index: s.Index, Table: s.Table}, nil
	case *parser.InsertStmt:
		return &InsertPlan{Table: s.Table, Columns: s.Columns, Values: s.Values}, nil
	case *parser.SelectStmt:
		access, err := chooseAccess(s.Table, s.Where, idx)
		if err != nil {
			return nil, err
		}
		return &SelectPlan{
			Table:   s.Table,
			Star:    s.Star,
			Columns: s.Columns,
			Where:   s.Where,
			OrderBy: s.OrderBy,
			Limit:   s.Limit,
			Offset:  s.Offset,
			Access:  access,
		}, nil
	case *parser.UpdateStmt:
		access, err := chooseAccess(s.Table, s.Where, idx)
		if err != nil {
			return nil, err
		}
		return &UpdatePlan{
			Table:       s.Table,
			Assignments: s.Assignments,
			Where:       s.Where,
			Access:      access,
		}, nil
	case *parser.DeleteStmt:
		access, err := chooseAccess(s.Table, s.Where, idx)
		if err != nil {
			return nil, err
		}
		return &DeletePlan{Table: s.Table, Where: s.Where, Access: access}, nil
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

// chooseAccess returns an index point-lookup when some WHERE condition is an
// equality on an indexed column with a non-null literal. Conditions are tried
// in statement order, indexes in catalog (name) order, so the choice is
// deterministic.
func chooseAccess(table string, where []parser.Condition, idx IndexLister) (*IndexLookup, error) {
	if len(where) == 0 || idx == nil {
		return nil, nil
	}
	indexes, err := idx.GetIndexes(table)
	if err != nil {
		return nil, err
	}
	if len(indexes) == 0 {
		return nil, nil
	}

	for _, cond := range where {
		if cond.Op != parser.OpEq || cond.Value.IsNull() {
			continue
		}
		for _, im := range indexes {
			if im.Column == cond.Column {
				return &IndexLookup{Index: im, Key: cond.Value}, nil
			}
		}
	}
	return nil, nil
}

func buildCreateTable(s *parser.CreateTableStmt) (Plan, error) {
	var cols []record.Column
	for _, c := range s.Columns {
		cols = append(cols, record.Column{
			Name:       c.Name,
			Type:       c.Type,
			Nullable:   !c.NotNull && !c.PrimaryKey,
			PrimaryKey: c.PrimaryKey,
		})
	}
	return &CreateTablePlan{
		Table:       s.Table,
		IfNotExists: s.IfNotExists,
		Schema:      record.Schema{Cols: cols},
	}, nil
}
