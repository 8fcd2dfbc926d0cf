// Package executor runs plans against the KV store: one procedure per
// statement kind, with index upkeep delegated to the index maintainer.
//
// Every operation is a sequence of KV calls with no cross-call atomicity;
// a statement runs to completion or returns an error, and partial effects
// of a failed multi-step DDL are not rolled back.
package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/index"
	"github.com/tuannm99/kvsql/internal/keys"
	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/parser"
	"github.com/tuannm99/kvsql/internal/sql/planner"
)

// Executor executes SQL statements against one catalog root.
type Executor struct {
	kv  kv.Store
	cat *catalog.Store
	idx *index.Maintainer
	ids record.IDGenerator
	log *slog.Logger
}

func New(store kv.Store, cat *catalog.Store, ids record.IDGenerator, log *slog.Logger) *Executor {
	if ids == nil {
		ids = record.UUIDGenerator{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		kv:  store,
		cat: cat,
		idx: index.NewMaintainer(store, cat.Root()),
		ids: ids,
		log: log,
	}
}

// Execute is the top-level entry: SQL string -> Result.
func (e *Executor) Execute(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}

	plan, err := planner.Build(stmt, e.cat)
	if err != nil {
		return nil, err
	}
	return e.execPlan(plan)
}

func (e *Executor) execPlan(p planner.Plan) (*Result, error) {
	switch plan := p.(type) {
	case *planner.CreateTablePlan:
		return e.execCreateTable(plan)
	case *planner.DropTablePlan:
		return e.execDropTable(plan)
	case *planner.CreateIndexPlan:
		return e.execCreateIndex(plan)
	case *planner.DropIndexPlan:
		return e.execDropIndex(plan)
	case *planner.InsertPlan:
		return e.execInsert(plan)
	case *planner.SelectPlan:
		return e.execSelect(plan)
	case *planner.UpdatePlan:
		return e.execUpdate(plan)
	case *planner.DeletePlan:
		return e.execDelete(plan)
	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

func (e *Executor) execCreateTable(p *planner.CreateTablePlan) (*Result, error) {
	existing, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if p.IfNotExists {
			return &Result{Columns: existing.Schema.ColNames()}, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrTableExists, p.Table)
	}

	if err := e.cat.PutSchema(catalog.TableMeta{Name: p.Table, Schema: p.Schema}); err != nil {
		return nil, err
	}
	e.log.Debug("table created", "table", p.Table, "columns", p.Schema.NumCols())
	return &Result{Columns: p.Schema.ColNames()}, nil
}

func (e *Executor) execDropTable(p *planner.DropTablePlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		if p.IfExists {
			return &Result{}, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
	}

	indexes, err := e.cat.GetIndexes(p.Table)
	if err != nil {
		return nil, err
	}
	for _, im := range indexes {
		if _, err := e.idx.DropEntries(p.Table, im.Name); err != nil {
			return nil, err
		}
		if err := e.cat.DeleteIndex(p.Table, im.Name); err != nil {
			return nil, err
		}
	}

	entries, err := e.kv.Scan(keys.RowPrefix(e.cat.Root(), p.Table))
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := e.kv.Delete(entry.Key); err != nil {
			return nil, err
		}
	}

	if err := e.cat.DeleteSchema(p.Table); err != nil {
		return nil, err
	}
	e.log.Debug("table dropped", "table", p.Table, "rows", len(entries), "indexes", len(indexes))
	return &Result{RowsAffected: int64(len(entries))}, nil
}

func (e *Executor) execCreateIndex(p *planner.CreateIndexPlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Meta.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Meta.Table)
	}
	if _, ok := meta.Schema.Col(p.Meta.Column); !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, p.Meta.Table, p.Meta.Column)
	}

	existing, err := e.cat.GetIndex(p.Meta.Table, p.Meta.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrIndexExists, p.Meta.Name, p.Meta.Table)
	}

	if err := e.cat.PutIndex(p.Meta); err != nil {
		return nil, err
	}
	n, err := e.idx.Backfill(p.Meta)
	if err != nil {
		return nil, err
	}
	e.log.Debug("index created", "table", p.Meta.Table, "index", p.Meta.Name, "backfilled", n)
	return &Result{RowsAffected: int64(n)}, nil
}

func (e *Executor) execDropIndex(p *planner.DropIndexPlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
	}

	im, err := e.cat.GetIndex(p.Table, p.Index)
	if err != nil {
		return nil, err
	}
	if im == nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrIndexNotFound, p.Index, p.Table)
	}

	n, err := e.idx.DropEntries(p.Table, p.Index)
	if err != nil {
		return nil, err
	}
	if err := e.cat.DeleteIndex(p.Table, p.Index); err != nil {
		return nil, err
	}
	return &Result{RowsAffected: int64(n)}, nil
}

func (e *Executor) execInsert(p *planner.InsertPlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
	}

	cols := p.Columns
	if cols == nil {
		cols = meta.Schema.ColNames()
	}
	if len(cols) != len(p.Values) {
		return nil, fmt.Errorf("%w: %d columns, %d values", ErrArityMismatch, len(cols), len(p.Values))
	}
	for _, c := range cols {
		if _, ok := meta.Schema.Col(c); !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, p.Table, c)
		}
	}

	row := record.NewRow("")
	for i, c := range cols {
		row.Cols[c] = p.Values[i]
	}

	if pk := meta.Schema.PrimaryKey(); pk != "" && !row.Get(pk).IsNull() {
		row.ID = row.Get(pk).String()
	} else {
		row.ID = e.ids.NewID()
	}

	rowKey := keys.Row(e.cat.Root(), p.Table, row.ID)
	if _, exists, err := e.kv.Get(rowKey); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, row.ID)
	}

	b, err := record.EncodeRow(row)
	if err != nil {
		return nil, err
	}
	if err := e.kv.Put(rowKey, b); err != nil {
		return nil, err
	}

	indexes, err := e.cat.GetIndexes(p.Table)
	if err != nil {
		return nil, err
	}
	for _, im := range indexes {
		if err := e.idx.Apply(im, record.Row{}, row); err != nil {
			return nil, err
		}
	}

	return &Result{RowsAffected: 1}, nil
}

func (e *Executor) execSelect(p *planner.SelectPlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
	}

	rows, err := e.loadCandidates(p.Table, p.Access, p.Where)
	if err != nil {
		return nil, err
	}

	sortRows(rows, p.OrderBy)
	rows = clip(rows, p.Offset, p.Limit)

	cols := p.Columns
	if p.Star {
		cols = meta.Schema.ColNames()
	}

	return &Result{
		Columns:      cols,
		Rows:         project(rows, cols),
		RowsAffected: 0,
	}, nil
}

func (e *Executor) execUpdate(p *planner.UpdatePlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
	}
	for _, a := range p.Assignments {
		if _, ok := meta.Schema.Col(a.Column); !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, p.Table, a.Column)
		}
	}

	rows, err := e.loadCandidates(p.Table, p.Access, p.Where)
	if err != nil {
		return nil, err
	}
	indexes, err := e.cat.GetIndexes(p.Table)
	if err != nil {
		return nil, err
	}

	var affected int64
	for _, old := range rows {
		updated := old.Clone()
		for _, a := range p.Assignments {
			updated.Cols[a.Column] = a.Value
		}

		for _, im := range indexes {
			if err := e.idx.Apply(im, old, updated); err != nil {
				return nil, err
			}
		}

		b, err := record.EncodeRow(updated)
		if err != nil {
			return nil, err
		}
		if err := e.kv.Put(keys.Row(e.cat.Root(), p.Table, updated.ID), b); err != nil {
			return nil, err
		}
		affected++
	}

	return &Result{RowsAffected: affected}, nil
}

func (e *Executor) execDelete(p *planner.DeletePlan) (*Result, error) {
	meta, err := e.cat.GetSchema(p.Table)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, p.Table)
	}

	rows, err := e.loadCandidates(p.Table, p.Access, p.Where)
	if err != nil {
		return nil, err
	}
	indexes, err := e.cat.GetIndexes(p.Table)
	if err != nil {
		return nil, err
	}

	var affected int64
	for _, row := range rows {
		for _, im := range indexes {
			if err := e.idx.Apply(im, row, record.Row{}); err != nil {
				return nil, err
			}
		}
		if err := e.kv.Delete(keys.Row(e.cat.Root(), p.Table, row.ID)); err != nil {
			return nil, err
		}
		affected++
	}

	return &Result{RowsAffected: affected}, nil
}

// loadCandidates returns the rows matching the WHERE conjunction, via index
// point-lookup when an access path was planned, full scan otherwise. The
// whole WHERE is re-evaluated against every loaded row either way, so a
// stale index entry can never surface a wrong row.
func (e *Executor) loadCandidates(table string, access *planner.IndexLookup, where []parser.Condition) ([]record.Row, error) {
	if access != nil {
		ids, err := e.idx.Lookup(access.Index, access.Key)
		if err != nil {
			return nil, err
		}

		var out []record.Row
		for _, id := range ids {
			b, ok, err := e.kv.Get(keys.Row(e.cat.Root(), table, id))
			if err != nil {
				return nil, err
			}
			if !ok {
				// dangling entry: the row is gone, skip it
				e.log.Warn("stale index entry", "table", table, "index", access.Index.Name, "row", id)
				continue
			}
			row, err := record.DecodeRow(b)
			if err != nil {
				return nil, err
			}
			match, err := matchWhere(row, where)
			if err != nil {
				return nil, err
			}
			if match {
				out = append(out, row)
			}
		}
		return out, nil
	}

	entries, err := e.kv.Scan(keys.RowPrefix(e.cat.Root(), table))
	if err != nil {
		return nil, err
	}

	var out []record.Row
	for _, entry := range entries {
		row, err := record.DecodeRow(entry.Value)
		if err != nil {
			return nil, err
		}
		match, err := matchWhere(row, where)
		if err != nil {
			return nil, err
		}
		if match {
			out = append(out, row)
		}
	}
	return out, nil
}
