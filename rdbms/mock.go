package rdbms

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// MockConnector records executed SQL for assertion in tests.
// Set FailOnExecContaining to force an error from Exec calls whose statement
// contains the given substring.
type MockConnector struct {
	ExecLog              []MockExec
	FailOnExecContaining string
	BeginCount           int
	Transactions         []*MockTransacter
}

type MockExec struct {
	Query string
	Args  []interface{}
}

type MockTransacter struct {
	parent     *MockConnector
	Committed  bool
	RolledBack bool
	ExecLog    []MockExec
}

func (m *MockConnector) Begin() (Transacter, error) {
	m.BeginCount++
	t := &MockTransacter{parent: m}
	m.Transactions = append(m.Transactions, t)
	return t, nil
}

func (m *MockConnector) Exec(query string, args ...interface{}) (sql.Result, error) {
	m.ExecLog = append(m.ExecLog, MockExec{Query: query, Args: args})
	if m.failsFor(query) {
		return nil, errors.New("mock exec failure")
	}
	return mockResult{}, nil
}

func (m *MockConnector) Queryx(query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, errors.New("MockConnector does not support Queryx")
}

func (m *MockConnector) Close() error { return nil }

func (m *MockConnector) GetType() string { return "mock" }

func (m *MockConnector) failsFor(query string) bool {
	return m.FailOnExecContaining != "" && strings.Contains(query, m.FailOnExecContaining)
}

func (t *MockTransacter) Exec(query string, args ...interface{}) (sql.Result, error) {
	t.ExecLog = append(t.ExecLog, MockExec{Query: query, Args: args})
	if t.parent != nil && t.parent.failsFor(query) {
		return nil, errors.New("mock exec failure")
	}
	return mockResult{}, nil
}

func (t *MockTransacter) Commit() error {
	t.Committed = true
	return nil
}

func (t *MockTransacter) Rollback() error {
	t.RolledBack = true
	return nil
}

type mockResult struct{}

func (mockResult) LastInsertId() (int64, error) { return 0, nil }
func (mockResult) RowsAffected() (int64, error) { return 0, nil }
