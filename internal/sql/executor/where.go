package executor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/parser"
)

// matchWhere evaluates the AND-only conjunction against one row.
func matchWhere(row record.Row, conds []parser.Condition) (bool, error) {
	for _, c := range conds {
		ok, err := matchCondition(row, c)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchCondition(row record.Row, c parser.Condition) (bool, error) {
	v := row.Get(c.Column)

	switch c.Op {
	case parser.OpEq:
		return record.Equal(v, c.Value), nil
	case parser.OpNe:
		return !record.Equal(v, c.Value), nil

	case parser.OpGt, parser.OpGe, parser.OpLt, parser.OpLe:
		if v.IsNull() || c.Value.IsNull() {
			return false, nil
		}
		cmp, ok := record.Compare(v, c.Value)
		if !ok {
			return false, nil
		}
		switch c.Op {
		case parser.OpGt:
			return cmp > 0, nil
		case parser.OpGe:
			return cmp >= 0, nil
		case parser.OpLt:
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}

	case parser.OpLike, parser.OpNotLike:
		if v.IsNull() || c.Value.IsNull() {
			return false, nil
		}
		re, err := compileLike(c.Value.String())
		if err != nil {
			return false, err
		}
		m := re.MatchString(v.String())
		if c.Op == parser.OpNotLike {
			m = !m
		}
		return m, nil

	default:
		return false, fmt.Errorf("executor: unsupported operator %q", c.Op)
	}
}

// compileLike translates a LIKE pattern into an anchored case-insensitive
// regexp: '%' matches any run, '_' any single character. Compiled patterns
// are memoized in an LRU cache.
func compileLike(pattern string) (*regexp.Regexp, error) {
	if re, ok := likePatterns.get(pattern); ok {
		return re, nil
	}

	var b strings.Builder
	b.WriteString("(?is)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("executor: bad LIKE pattern %q: %w", pattern, err)
	}
	likePatterns.put(pattern, re)
	return re, nil
}
