package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
)

const noopDriverName = "tasksum-mocks-noop"

var registerNoopDriver sync.Once

// errNoQueries is returned by any attempt to run SQL on a no-op connection.
var errNoQueries = errors.New("mocks: no-op database does not execute queries")

// NewNoopDB returns a *sql.DB whose transactions always begin, commit and
// roll back successfully. Queries fail; pair it with an in-memory store.
func NewNoopDB() *sql.DB {
	registerNoopDriver.Do(func() {
		sql.Register(noopDriverName, noopDriver{})
	})
	// sql.Open only fails for unknown drivers.
	db, _ := sql.Open(noopDriverName, "")
	return db
}

type noopDriver struct{}

func (noopDriver) Open(string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(string) (driver.Stmt, error) { return nil, errNoQueries }
func (noopConn) Close() error                        { return nil }
func (noopConn) Begin() (driver.Tx, error)           { return noopTx{}, nil }

func (noopConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return noopTx{}, nil
}

func (noopConn) Ping(context.Context) error { return nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
