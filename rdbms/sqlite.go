package rdbms

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/xo/dburl"

	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/logger"
)

// ConnectionDetails holds the resolved driver and DSN for the warehouse.
type ConnectionDetails struct {
	Type string // driver name, e.g. sqlite3
	Dsn  string // driver-specific data source name (a file path for sqlite)
}

// NewConnectionDetails resolves a warehouse location. Accepts either a plain
// file path (data/warehouse/smart_sales.db) or a database URL understood by
// dburl (sqlite:/path/to/file.db, file:foo.db).
func NewConnectionDetails(raw string) (ConnectionDetails, error) {
	if strings.Contains(raw, ":") && !strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, ".") { // if it looks like a URL...
		u, err := dburl.Parse(raw)
		if err != nil {
			return ConnectionDetails{}, errors.Wrapf(err, "unable to parse warehouse URL %q", raw)
		}
		if u.Driver != constants.ConnectionTypeSqlite3 {
			return ConnectionDetails{}, errors.Errorf("unsupported warehouse driver %q: the warehouse is a single-file sqlite store", u.Driver)
		}
		return ConnectionDetails{Type: u.Driver, Dsn: u.DSN}, nil
	}
	return ConnectionDetails{Type: constants.ConnectionTypeSqlite3, Dsn: raw}, nil
}

// sqliteConnection implements Connector over sqlx + mattn/go-sqlite3.
type sqliteConnection struct {
	log logger.Logger
	db  *sqlx.DB
}

// NewSqliteConnection opens (creating if absent) the warehouse file.
func NewSqliteConnection(log logger.Logger, details ConnectionDetails) (Connector, error) {
	db, err := sqlx.Open(details.Type, details.Dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open warehouse %q", details.Dsn)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "unable to open warehouse %q", details.Dsn)
	}
	// One writer per run; a single connection avoids sqlite lock contention
	// between the implicit pool connections.
	db.SetMaxOpenConns(1)
	log.Debug("opened sqlite warehouse ", details.Dsn)
	return &sqliteConnection{log: log, db: db}, nil
}

func (c *sqliteConnection) Begin() (Transacter, error) {
	return c.db.Begin()
}

func (c *sqliteConnection) Exec(query string, args ...interface{}) (sql.Result, error) {
	c.log.Trace("exec: ", query)
	return c.db.Exec(query, args...)
}

func (c *sqliteConnection) Queryx(query string, args ...interface{}) (*sqlx.Rows, error) {
	c.log.Trace("query: ", query)
	return c.db.Queryx(query, args...)
}

func (c *sqliteConnection) Close() error {
	return c.db.Close()
}

func (c *sqliteConnection) GetType() string {
	return constants.ConnectionTypeSqlite3
}
