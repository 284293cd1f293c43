package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/kirana-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// IdentityService resolves principal names to stored identities.
type IdentityService interface {
	// FindByName returns [ErrIdentityNotFound] for an unknown name and
	// [ErrIdentityStoreUnavailable] (wrapped) for any other store failure.
	FindByName(ctx context.Context, name string) (models.Principal, error)
	FindUser(ctx context.Context, name string) (models.User, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, req models.AuthRequest) (models.Token, error)
	CreateToken(ctx context.Context, subject string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// GateService decides whether a bearer token admits its caller.
type GateService interface {
	Admit(ctx context.Context, tokenString string) (models.Principal, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type TransactionService interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	CreateEmployeeTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

type CurrencyService interface {
	// ConversionRate returns how many units of target one unit of source
	// buys, rounded half-up to 4 decimal places.
	ConversionRate(ctx context.Context, source, target string) (decimal.Decimal, error)
	// ToCommon converts amount in source to [models.CommonCurrency].
	ToCommon(ctx context.Context, amount decimal.Decimal, source string) (decimal.Decimal, error)
}

type ReportService interface {
	Generate(ctx context.Context, period models.ReportPeriod) ([]models.Report, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
