package rdbms

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Connector abstracts all access to the warehouse database so components and
// tests never depend on a concrete driver.
type Connector interface {
	Begin() (Transacter, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
	Queryx(query string, args ...interface{}) (*sqlx.Rows, error)
	Close() error
	GetType() string
}

// Transacter is the slice of transaction behaviour the loader needs.
type Transacter interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Commit() error
	Rollback() error
}

// SqlStmtGenerator is able to generate SQL text for batches of rows.
type SqlStmtGenerator interface {
	InitBatch(batchSize int)
	AddValuesToBatch(values []interface{}) (batchIsFull bool, err error)
	GetStatement() string
	GetValues() []interface{}
	NumRowsInBatch() int
}
