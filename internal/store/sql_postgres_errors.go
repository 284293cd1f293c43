package store

import (
	"github.com/jackc/pgerrcode"
)

// ErrorClassification tells whether a failed statement may succeed when run
// again unchanged.
type ErrorClassification int

const (
	// Permanent failures are returned to the caller as they are. Unknown
	// errors are permanent.
	Permanent ErrorClassification = iota

	// Transient failures are connection losses, rollbacks and server
	// restarts. Reads hitting them are retried by [DB.withRetry].
	Transient
)

// PostgresErrorClassifier implements [ErrorClassificator] over SQLSTATE codes.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Classes 08 (connection), 40
// (transaction rollback) and 57 (operator intervention, except a cancelled
// query) are transient.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	switch {
	case code == "":
		return Permanent
	case code == pgerrcode.QueryCanceled:
		return Permanent
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		pgerrcode.IsOperatorIntervention(code):
		return Transient
	}
	return Permanent
}

// IsUniqueViolation implements [ErrorClassificator].
func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation
}
