// Package kvsql is a SQL layer over an ordered key-value store: a
// hand-written parser, a catalog of table schemas and index metadata, a
// planner choosing between index point-lookup and full scan, and an
// executor that keeps secondary indexes in sync on every write.
//
// The store itself is a collaborator, not part of this module's job:
// anything satisfying kv.Store works, and kv.NewMemory gives an in-process
// implementation for embedding and tests.
package kvsql

import (
	"log/slog"

	"github.com/tuannm99/kvsql/internal/catalog"
	"github.com/tuannm99/kvsql/internal/kv"
	"github.com/tuannm99/kvsql/internal/record"
	"github.com/tuannm99/kvsql/internal/sql/executor"
)

// DefaultRoot is the key namespace used when no WithRoot option is given.
const DefaultRoot = "kvsql"

// Result is the outcome of one statement.
type Result = executor.Result

// DB is a single-session SQL engine bound to one store and one root
// namespace. Statements run sequentially; DB itself does no locking.
type DB struct {
	exec *executor.Executor
}

type Option func(*options)

type options struct {
	root string
	ids  record.IDGenerator
	log  *slog.Logger
}

// WithRoot sets the key namespace all of this DB's keys live under.
func WithRoot(root string) Option {
	return func(o *options) { o.root = root }
}

// WithIDGenerator overrides row id generation for tables without a
// primary key. Defaults to random UUIDs.
func WithIDGenerator(ids record.IDGenerator) Option {
	return func(o *options) { o.ids = ids }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// Open binds a SQL engine to the given store.
func Open(store kv.Store, opts ...Option) *DB {
	o := options{root: DefaultRoot}
	for _, opt := range opts {
		opt(&o)
	}

	cat := catalog.NewStore(store, o.root)
	return &DB{exec: executor.New(store, cat, o.ids, o.log)}
}

// Execute parses, plans and runs one SQL statement.
func (db *DB) Execute(sql string) (*Result, error) {
	return db.exec.Execute(sql)
}
