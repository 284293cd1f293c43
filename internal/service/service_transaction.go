package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/internal/validators"
	"github.com/MKhiriev/kirana-ledger/models"
)

type transactionService struct {
	transactionRepository store.TransactionRepository
	currencyService       CurrencyService
	validator             validators.Validator

	logger *logger.Logger
}

func NewTransactionService(transactionRepository store.TransactionRepository, currencyService CurrencyService, logger *logger.Logger) TransactionService {
	return &transactionService{
		transactionRepository: transactionRepository,
		currencyService:       currencyService,
		validator:             validators.NewLedgerValidator(),
		logger:                logger,
	}
}

func (s *transactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.transactionRepository.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction converts the amount to the common currency and records
// the entry on behalf of the principal in ctx.
func (s *transactionService) CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	transaction, err := s.prepare(ctx, transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	if p, ok := utils.PrincipalFromContext(ctx); ok {
		transaction.CreatedBy = p.Name
	}

	created, err := s.transactionRepository.CreateTransaction(ctx, transaction)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction creation ended with error: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*transactionService.CreateTransaction").
		Int64("transaction_id", created.ID).Str("type", string(created.Type)).Msg("transaction recorded")
	return created, nil
}

// CreateEmployeeTransaction is CreateTransaction restricted to credits.
func (s *transactionService) CreateEmployeeTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	if transaction.Type.IsValid() && transaction.Type.Normalize() != models.TransactionCredit {
		return models.Transaction{}, ErrEmployeeDebitForbidden
	}
	return s.CreateTransaction(ctx, transaction)
}

// UpdateTransaction re-converts the amount and rewrites the entry.
func (s *transactionService) UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	if err := s.validator.Validate(ctx, transaction, validators.FieldID); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	transaction, err := s.prepare(ctx, transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	updated, err := s.transactionRepository.UpdateTransaction(ctx, transaction)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction update ended with error: %w", err)
	}
	return updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	if transactionID <= 0 {
		return fmt.Errorf("%w: missing id", ErrInvalidTransaction)
	}

	if err := s.transactionRepository.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("transaction deletion ended with error: %w", err)
	}
	return nil
}

// prepare validates and normalizes transaction and fills ConvertedAmount.
func (s *transactionService) prepare(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	transaction.Type = transaction.Type.Normalize()
	transaction.Currency = strings.ToUpper(strings.TrimSpace(transaction.Currency))

	if err := s.validator.Validate(ctx, transaction); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	converted, err := s.currencyService.ToCommon(ctx, transaction.OriginalAmount, transaction.Currency)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("error converting amount: %w", err)
	}
	transaction.ConvertedAmount = converted

	return transaction, nil
}
