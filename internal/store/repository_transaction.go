package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/models"
)

type transactionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionRepository constructs a [TransactionRepository] over the
// "transactions" table.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		t     models.Transaction
		tType string
	)
	err := row.Scan(&t.ID, &t.TransactionDate, &tType, &t.Currency, &t.OriginalAmount, &t.ConvertedAmount, &t.CreatedBy)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Type = models.TransactionType(tType).Normalize()

	return t, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	query, args, err := buildListTransactionsQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*transactionRepository.ListTransactions", query, args)
}

func (r *transactionRepository) ListTransactionsBetween(ctx context.Context, from, to models.Date) ([]models.Transaction, error) {
	query, args, err := buildListTransactionsBetweenQuery(r.db.builder(), from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*transactionRepository.ListTransactionsBetween", query, args)
}

func (r *transactionRepository) list(ctx context.Context, fn, query string, args []any) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transactions, nil
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateTransactionQuery(r.db.builder(), transaction)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.CreateTransaction").Msg("error creating transaction")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// UpdateTransaction rewrites every mutable column. CreatedBy is never changed.
func (r *transactionRepository) UpdateTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTransactionQuery(r.db.builder(), transaction)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Transaction{}, ErrTransactionNotFound
	case err != nil:
		log.Err(err).Str("func", "*transactionRepository.UpdateTransaction").Msg("error updating transaction")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteTransactionQuery(r.db.builder(), transactionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.DeleteTransaction").Msg("error deleting transaction")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
