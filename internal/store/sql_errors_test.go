package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
)

func nopLogger() *logger.Logger {
	return logger.Nop()
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name     string
		err      error
		expected ErrorClassification
	}{
		{name: "nil", err: nil, expected: Permanent},
		{name: "plain error", err: errors.New("x"), expected: Permanent},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), expected: Transient},
		{name: "wrapped serialization", err: fmt.Errorf("tx: %w", pgError(pgerrcode.SerializationFailure)), expected: Transient},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), expected: Transient},
		{name: "admin shutdown", err: pgError(pgerrcode.AdminShutdown), expected: Transient},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), expected: Transient},
		{name: "query canceled", err: pgError(pgerrcode.QueryCanceled), expected: Permanent},
		{name: "unique", err: pgError(pgerrcode.UniqueViolation), expected: Permanent},
		{name: "undefined table", err: pgError(pgerrcode.UndefinedTable), expected: Permanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.err))
		})
	}

	assert.True(t, c.IsUniqueViolation(fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation))))
	assert.False(t, c.IsUniqueViolation(pgError(pgerrcode.CheckViolation)))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Transient, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Transient, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, Permanent, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, Permanent, c.Classify(errors.New("x")))

	assert.True(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(context.Background(), config.DB{Driver: "oracle"}, nopLogger())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewConnectSQLite_InMemory(t *testing.T) {
	db, err := NewDB(context.Background(), config.DB{Driver: config.DriverSQLite, DSN: ":memory:"}, nopLogger())
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver())
	assert.NoError(t, db.Migrate(context.Background()))
}

func TestSqliteFilePath(t *testing.T) {
	assert.Equal(t, "ledger.db", sqliteFilePath("file:ledger.db?_fk=1"))
	assert.Equal(t, "/tmp/x.db", sqliteFilePath("/tmp/x.db"))
}
