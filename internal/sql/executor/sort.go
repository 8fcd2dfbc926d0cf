package executor

import (
	"sort"

	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/parser"
)

// sortRows applies a stable multi-key sort. Nulls order last on every key
// regardless of direction.
func sortRows(rows []record.Row, keys []parser.OrderKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			a := rows[i].Get(k.Column)
			b := rows[j].Get(k.Column)

			an, bn := a.IsNull(), b.IsNull()
			if an || bn {
				if an == bn {
					continue
				}
				return bn // non-null before null
			}

			cmp, ok := record.Compare(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if k.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// clip applies OFFSET then LIMIT, in that order. limit -1 means no limit.
func clip(rows []record.Row, offset, limit int) []record.Row {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// project maps rows onto the projected columns. A column missing from a row
// is silently omitted from that row's output.
func project(rows []record.Row, cols []string) []map[string]record.Value {
	out := make([]map[string]record.Value, 0, len(rows))
	for _, r := range rows {
		m := make(map[string]record.Value, len(cols))
		for _, c := range cols {
			if r.Has(c) {
				m[c] = r.Get(c)
			}
		}
		out = append(out, m)
	}
	return out
}
