// Package parser turns one SQL statement string into a tagged Statement.
//
// The grammar is deliberately small: eight statement kinds, AND-only WHERE
// conjunctions, no joins or subqueries. Parsing is plain string dispatch with
// quote- and paren-aware splitting; no side effects.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tuannm99/kvsql/internal/record"
)

// ErrParse marks any malformed or unsupported statement.
var ErrParse = errors.New("parse error")

func errf(format string, args ...any) error {
	return fmt.Errorf("parser: %w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// Parse parses a single SQL statement. A trailing ';' is allowed.
func Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" {
		return nil, errf("empty statement")
	}

	up := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(up, "CREATE TABLE "):
		return parseCreateTable(s[len("CREATE TABLE "):])
	case strings.HasPrefix(up, "DROP TABLE "):
		return parseDropTable(s[len("DROP TABLE "):])
	case strings.HasPrefix(up, "CREATE INDEX "):
		return parseCreateIndex(s[len("CREATE INDEX "):])
	case strings.HasPrefix(up, "DROP INDEX "):
		return parseDropIndex(s[len("DROP INDEX "):])
	case strings.HasPrefix(up, "INSERT INTO "):
		return parseInsert(s[len("INSERT INTO "):])
	case strings.HasPrefix(up, "SELECT "):
		return parseSelect(s[len("SELECT "):])
	case strings.HasPrefix(up, "UPDATE "):
		return parseUpdate(s[len("UPDATE "):])
	case strings.HasPrefix(up, "DELETE FROM "):
		return parseDelete(s[len("DELETE FROM "):])
	default:
		return nil, errf("unsupported statement: %q", sql)
	}
}

func parseCreateTable(rest string) (Statement, error) {
	rest = strings.TrimSpace(rest)

	ifNotExists := false
	if up := strings.ToUpper(rest); strings.HasPrefix(up, "IF NOT EXISTS ") {
		ifNotExists = true
		rest = strings.TrimSpace(rest[len("IF NOT EXISTS "):])
	}

	open := strings.Index(rest, "(")
	close := strings.LastIndex(rest, ")")
	if open < 0 || close < open || strings.TrimSpace(rest[close+1:]) != "" {
		return nil, errf("invalid CREATE TABLE syntax: %q", rest)
	}

	table, err := parseIdent(rest[:open])
	if err != nil {
		return nil, errf("invalid table name: %v", err)
	}

	defPart := strings.TrimSpace(rest[open+1 : close])
	if defPart == "" {
		return nil, errf("CREATE TABLE %s: empty column list", table)
	}

	// split at depth 0 so PRIMARY KEY(col) keeps its parens
	var cols []ColumnDef
	pkFromClause := ""
	for _, def := range splitTop(defPart, ',') {
		def = strings.TrimSpace(def)
		up := strings.ToUpper(def)

		if strings.HasPrefix(up, "PRIMARY KEY") {
			inner := strings.TrimSpace(def[len("PRIMARY KEY"):])
			if !strings.HasPrefix(inner, "(") || !strings.HasSuffix(inner, ")") {
				return nil, errf("invalid PRIMARY KEY clause: %q", def)
			}
			name, err := parseIdent(inner[1 : len(inner)-1])
			if err != nil {
				return nil, errf("invalid PRIMARY KEY column: %v", err)
			}
			if pkFromClause != "" {
				return nil, errf("duplicate PRIMARY KEY clause: %q", def)
			}
			pkFromClause = name
			continue
		}

		toks := strings.Fields(def)
		if len(toks) < 2 {
			return nil, errf("invalid column definition: %q", def)
		}
		name, err := parseIdent(toks[0])
		if err != nil {
			return nil, errf("invalid column name: %v", err)
		}

		col := ColumnDef{Name: name, Type: record.NormalizeType(toks[1])}
		tail := strings.ToUpper(strings.Join(toks[2:], " "))
		if strings.Contains(tail, "PRIMARY KEY") {
			col.PrimaryKey = true
		}
		if strings.Contains(tail, "NOT NULL") {
			col.NotNull = true
		}
		cols = append(cols, col)
	}

	if pkFromClause != "" {
		found := false
		for i := range cols {
			if cols[i].Name == pkFromClause {
				cols[i].PrimaryKey = true
				found = true
			}
		}
		if !found {
			return nil, errf("PRIMARY KEY references undeclared column %q", pkFromClause)
		}
	}

	nPK := 0
	for _, c := range cols {
		if c.PrimaryKey {
			nPK++
		}
	}
	if nPK > 1 {
		return nil, errf("table %s declares more than one primary key", table)
	}

	return &CreateTableStmt{Table: table, IfNotExists: ifNotExists, Columns: cols}, nil
}

func parseDropTable(rest string) (Statement, error) {
	rest = strings.TrimSpace(rest)

	ifExists := false
	if up := strings.ToUpper(rest); strings.HasPrefix(up, "IF EXISTS ") {
		ifExists = true
		rest = strings.TrimSpace(rest[len("IF EXISTS "):])
	}

	table, err := parseIdent(rest)
	if err != nil {
		return nil, errf("invalid DROP TABLE syntax: %v", err)
	}
	return &DropTableStmt{Table: table, IfExists: ifExists}, nil
}

func parseCreateIndex(rest string) (Statement, error) {
	namePart, target, ok := splitKeyword(rest, "ON")
	if !ok {
		return nil, errf("invalid CREATE INDEX syntax: %q", rest)
	}
	index, err := parseIdent(namePart)
	if err != nil {
		return nil, errf("invalid index name: %v", err)
	}

	target = strings.TrimSpace(target)
	open := strings.Index(target, "(")
	if open < 0 || !strings.HasSuffix(target, ")") {
		return nil, errf("invalid CREATE INDEX target: %q", target)
	}
	table, err := parseIdent(target[:open])
	if err != nil {
		return nil, errf("invalid CREATE INDEX table: %v", err)
	}
	column, err := parseIdent(target[open+1 : len(target)-1])
	if err != nil {
		return nil, errf("invalid CREATE INDEX column: %v", err)
	}

	return &CreateIndexStmt{Index: index, Table: table, Column: column}, nil
}

func parseDropIndex(rest string) (Statement, error) {
	namePart, tablePart, ok := splitKeyword(rest, "ON")
	if !ok {
		return nil, errf("invalid DROP INDEX syntax: %q", rest)
	}
	index, err := parseIdent(namePart)
	if err != nil {
		return nil, errf("invalid index name: %v", err)
	}
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, errf("invalid DROP INDEX table: %v", err)
	}
	return &DropIndexStmt{Index: index, Table: table}, nil
}

func parseInsert(rest string) (Statement, error) {
	head, valPart, ok := splitKeyword(rest, "VALUES")
	if !ok {
		return nil, errf("invalid INSERT syntax: missing VALUES in %q", rest)
	}

	head = strings.TrimSpace(head)
	var table string
	var columns []string
	if open := strings.Index(head, "("); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return nil, errf("invalid INSERT column list: %q", head)
		}
		t, err := parseIdent(head[:open])
		if err != nil {
			return nil, errf("invalid INSERT table: %v", err)
		}
		table = t
		for _, c := range splitTop(head[open+1:len(head)-1], ',') {
			name, err := parseIdent(c)
			if err != nil {
				return nil, errf("invalid INSERT column: %v", err)
			}
			columns = append(columns, name)
		}
		if len(columns) == 0 {
			return nil, errf("invalid INSERT: empty column list")
		}
	} else {
		t, err := parseIdent(head)
		if err != nil {
			return nil, errf("invalid INSERT table: %v", err)
		}
		table = t
	}

	valPart = strings.TrimSpace(valPart)
	if !strings.HasPrefix(valPart, "(") || !strings.HasSuffix(valPart, ")") {
		return nil, errf("invalid INSERT values: %q", valPart)
	}
	inner := strings.TrimSpace(valPart[1 : len(valPart)-1])
	if inner == "" {
		return nil, errf("invalid INSERT: empty value list")
	}

	var values []record.Value
	for _, rv := range splitTop(inner, ',') {
		values = append(values, record.ParseLiteral(rv))
	}

	return &InsertStmt{Table: table, Columns: columns, Values: values}, nil
}

func parseSelect(rest string) (Statement, error) {
	proj, from, ok := splitKeyword(rest, "FROM")
	if !ok {
		return nil, errf("invalid SELECT syntax: missing FROM in %q", rest)
	}

	stmt := &SelectStmt{Limit: -1}

	proj = strings.TrimSpace(proj)
	if proj == "*" {
		stmt.Star = true
	} else {
		for _, c := range splitTop(proj, ',') {
			name, err := parseIdent(c)
			if err != nil {
				return nil, errf("invalid SELECT column: %v", err)
			}
			stmt.Columns = append(stmt.Columns, name)
		}
		if len(stmt.Columns) == 0 {
			return nil, errf("invalid SELECT: empty projection")
		}
	}

	// peel trailing clauses right to left: OFFSET, LIMIT, ORDER BY, WHERE
	from, offStr, hasOffset := splitKeyword(from, "OFFSET")
	from, limStr, hasLimit := splitKeyword(from, "LIMIT")
	from, ordStr, hasOrder := splitKeyword(from, "ORDER BY")
	tablePart, whereStr, hasWhere := splitKeyword(from, "WHERE")

	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, errf("invalid SELECT table: %v", err)
	}
	stmt.Table = table

	if hasWhere {
		conds, err := parseWhere(whereStr)
		if err != nil {
			return nil, err
		}
		stmt.Where = conds
	}

	if hasOrder {
		for _, part := range splitTop(ordStr, ',') {
			toks := strings.Fields(part)
			if len(toks) == 0 || len(toks) > 2 {
				return nil, errf("invalid ORDER BY key: %q", part)
			}
			name, err := parseIdent(toks[0])
			if err != nil {
				return nil, errf("invalid ORDER BY column: %v", err)
			}
			key := OrderKey{Column: name}
			if len(toks) == 2 {
				switch strings.ToUpper(toks[1]) {
				case "ASC":
				case "DESC":
					key.Desc = true
				default:
					return nil, errf("invalid ORDER BY direction: %q", toks[1])
				}
			}
			stmt.OrderBy = append(stmt.OrderBy, key)
		}
	}

	if hasLimit {
		n, err := parseCount(limStr)
		if err != nil {
			return nil, errf("invalid LIMIT: %v", err)
		}
		stmt.Limit = n
	}
	if hasOffset {
		n, err := parseCount(offStr)
		if err != nil {
			return nil, errf("invalid OFFSET: %v", err)
		}
		stmt.Offset = n
	}

	return stmt, nil
}

func parseUpdate(rest string) (Statement, error) {
	tablePart, after, ok := splitKeyword(rest, "SET")
	if !ok {
		return nil, errf("invalid UPDATE syntax: missing SET in %q", rest)
	}
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, errf("invalid UPDATE table: %v", err)
	}

	setPart, whereStr, hasWhere := splitKeyword(after, "WHERE")
	setPart = strings.TrimSpace(setPart)
	if setPart == "" {
		return nil, errf("invalid UPDATE: empty SET list")
	}

	var assigns []Assignment
	for _, a := range splitTop(setPart, ',') {
		a = strings.TrimSpace(a)
		kv := strings.SplitN(a, "=", 2)
		if len(kv) != 2 {
			return nil, errf("invalid assignment: %q", a)
		}
		col, err := parseIdent(kv[0])
		if err != nil {
			return nil, errf("invalid assignment column: %v", err)
		}
		assigns = append(assigns, Assignment{
			Column: col,
			Value:  record.ParseLiteral(kv[1]),
		})
	}

	stmt := &UpdateStmt{Table: table, Assignments: assigns}
	if hasWhere {
		conds, err := parseWhere(whereStr)
		if err != nil {
			return nil, err
		}
		stmt.Where = conds
	}
	return stmt, nil
}

func parseDelete(rest string) (Statement, error) {
	tablePart, whereStr, hasWhere := splitKeyword(rest, "WHERE")
	table, err := parseIdent(tablePart)
	if err != nil {
		return nil, errf("invalid DELETE table: %v", err)
	}

	stmt := &DeleteStmt{Table: table}
	if hasWhere {
		conds, err := parseWhere(whereStr)
		if err != nil {
			return nil, err
		}
		stmt.Where = conds
	}
	return stmt, nil
}

// parseWhere parses an AND-only conjunction of "column op literal" triples.
func parseWhere(s string) ([]Condition, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errf("empty WHERE clause")
	}

	var conds []Condition
	for {
		head, tail, more := splitKeyword(s, "AND")
		cond, err := parseCondition(head)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
		if !more {
			return conds, nil
		}
		s = tail
	}
}

func parseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)

	if left, right, ok := splitKeyword(s, "NOT LIKE"); ok {
		return buildCondition(left, OpNotLike, right)
	}
	if left, right, ok := splitKeyword(s, "LIKE"); ok {
		return buildCondition(left, OpLike, right)
	}

	// comparison operators, longest first, outside quotes
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			inQuote = c
			continue
		}
		for _, op := range [...]string{"<=", ">=", "!=", "<>", "=", "<", ">"} {
			if strings.HasPrefix(s[i:], op) {
				o := CompareOp(op)
				if o == "<>" {
					o = OpNe
				}
				return buildCondition(s[:i], o, s[i+len(op):])
			}
		}
	}
	return Condition{}, errf("invalid WHERE condition: %q", s)
}

func buildCondition(left string, op CompareOp, right string) (Condition, error) {
	col, err := parseIdent(left)
	if err != nil {
		return Condition{}, errf("invalid WHERE column: %v", err)
	}
	right = strings.TrimSpace(right)
	if right == "" {
		return Condition{}, errf("WHERE %s %s: missing literal", col, op)
	}
	return Condition{Column: col, Op: op, Value: record.ParseLiteral(right)}, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// parseIdent validates a table/column/index name:
// one token, first char letter or '_', rest letter/digit/'_'.
func parseIdent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("missing identifier")
	}

	parts := strings.Fields(s)
	if len(parts) != 1 {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	id := parts[0]

	for i, r := range id {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return "", fmt.Errorf("invalid identifier %q", id)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("invalid identifier %q", id)
		}
	}
	return id, nil
}

// findKeyword locates keyword as a whole word outside quoted literals,
// case-insensitively. Multi-word keywords use a single space.
func findKeyword(s, keyword string) int {
	up := strings.ToUpper(s)
	kw := strings.ToUpper(keyword)

	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			inQuote = c
			continue
		}
		if !strings.HasPrefix(up[i:], kw) {
			continue
		}
		beforeOK := i == 0 || up[i-1] == ' ' || up[i-1] == ')'
		after := i + len(kw)
		afterOK := after == len(s) || up[after] == ' ' || up[after] == '('
		if beforeOK && afterOK {
			return i
		}
	}
	return -1
}

// splitKeyword splits "X <keyword> Y" into (X, Y). ok is false when the
// keyword is absent, in which case left is the whole trimmed input.
func splitKeyword(s, keyword string) (left, right string, ok bool) {
	i := findKeyword(s, keyword)
	if i < 0 {
		return strings.TrimSpace(s), "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(keyword):]), true
}

// splitTop splits on sep at paren depth zero, outside quoted literals.
func splitTop(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	inQuote := byte(0)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote != 0:
			if c == inQuote {
				inQuote = 0
			}
			cur.WriteByte(c)
		case c == '\'' || c == '"':
			inQuote = c
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, strings.TrimSpace(cur.String()))
	return parts
}
