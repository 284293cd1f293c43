package store

import (
	"context"
	"time"

	"github.com/MKhiriev/kirana-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Usernames are unique.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// UpdateUser replaces the record identified by user.UserID. An empty
	// PasswordHash keeps the stored one.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// TransactionRepository persists ledger entries.
type TransactionRepository interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	// ListTransactionsBetween returns entries dated within [from, to],
	// both bounds inclusive.
	ListTransactionsBetween(ctx context.Context, from, to models.Date) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// RateCache keeps exchange rate tables keyed by their base currency.
type RateCache interface {
	// GetRates reports found=false on a miss or an expired entry.
	GetRates(ctx context.Context, base string) (rates models.ExchangeRates, found bool, err error)
	SetRates(ctx context.Context, rates models.ExchangeRates, ttl time.Duration) error
}

// ErrorClassificator inspects driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
