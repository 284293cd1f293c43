package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/migrations"
)

// DB wraps a *sql.DB together with the driver specific pieces every
// repository needs: an error classifier and a placeholder format.
type DB struct {
	*sql.DB
	driver             string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	readRetries        uint64
	readRetryDelay     time.Duration
	logger             *logger.Logger
}

// NewDB opens the database selected by cfg.Driver.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// wrapDB binds an open connection to the helpers of the given driver.
func wrapDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:             conn,
		driver:         driver,
		readRetries:    defaultReadRetries,
		readRetryDelay: defaultReadRetryDelay,
		logger:         log,
	}
	switch driver {
	case config.DriverSQLite:
		db.placeholder = sq.Question
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.placeholder = sq.Dollar
		db.errorClassificator = NewPostgresErrorClassifier()
	}
	return db
}

// Driver returns the database/sql driver name of db.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies all pending schema migrations of the driver's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.driver)
}

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}
