package validators

import (
	"context"

	"github.com/MKhiriev/kirana-ledger/models"
)

const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"

	FieldType            = "type"
	FieldCurrency        = "currency"
	FieldOriginalAmount  = "original_amount"
	FieldTransactionDate = "transaction_date"
)

// LedgerValidator validates users and transactions.
type LedgerValidator struct {
}

func NewLedgerValidator() Validator {
	return &LedgerValidator{}
}

func (v *LedgerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.Transaction:
		return v.validateTransaction(ctx, value, fields...)
	case *models.Transaction:
		return v.validateTransaction(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if user.UserID <= 0 {
				return ErrInvalidID
			}
		case FieldUsername:
			if user.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		case FieldRole:
			if !user.Role.IsValid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateTransaction(ctx context.Context, transaction models.Transaction, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldCurrency, FieldOriginalAmount, FieldTransactionDate}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if transaction.ID <= 0 {
				return ErrInvalidID
			}
		case FieldType:
			if !transaction.Type.IsValid() {
				return ErrInvalidTransactionType
			}
		case FieldCurrency:
			if !IsCurrencyCode(transaction.Currency) {
				return ErrInvalidCurrency
			}
		case FieldOriginalAmount:
			if !transaction.OriginalAmount.IsPositive() {
				return ErrInvalidAmount
			}
		case FieldTransactionDate:
			if transaction.TransactionDate.IsZero() {
				return ErrEmptyTransactionDate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// IsCurrencyCode reports whether s is three upper-case ASCII letters.
func IsCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
