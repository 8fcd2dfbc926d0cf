package executor

import "errors"

var (
	ErrTableNotFound = errors.New("kvsql: table not found")
	ErrTableExists   = errors.New("kvsql: table exists")
	ErrIndexNotFound = errors.New("kvsql: index not found")
	ErrIndexExists   = errors.New("kvsql: index already exists")
	ErrUnknownColumn = errors.New("kvsql: unknown column")
	ErrArityMismatch = errors.New("kvsql: column/value count mismatch")
	ErrDuplicateKey  = errors.New("kvsql: duplicate primary key")
)
