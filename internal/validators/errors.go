package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID     = errors.New("id must be positive")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidRole   = errors.New("role must be USER or EMPLOYEE")

	ErrInvalidTransactionType = errors.New("type must be credit or debit")
	ErrInvalidCurrency        = errors.New("currency must be a 3-letter code")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrEmptyTransactionDate   = errors.New("transaction date is required")
)
