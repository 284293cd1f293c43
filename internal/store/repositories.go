package store

import "github.com/MKhiriev/kirana-ledger/internal/logger"

// Repositories groups every persistence dependency of the service layer.
type Repositories struct {
	UserRepository        UserRepository
	TransactionRepository TransactionRepository
	RateCache             RateCache
}

// NewRepositories builds the SQL repositories over db. cache may be any
// [RateCache]; nil selects an in-memory one.
func NewRepositories(db *DB, cache RateCache, log *logger.Logger) *Repositories {
	if cache == nil {
		cache = NewMemoryRateCache(nil)
	}
	return &Repositories{
		UserRepository:        NewUserRepository(db, log),
		TransactionRepository: NewTransactionRepository(db, log),
		RateCache:             cache,
	}
}
