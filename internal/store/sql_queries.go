package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/kirana-ledger/models"
)

var (
	userColumns = []string{
		"user_id",
		"name",
		"username",
		"password_hash",
		"role",
	}

	transactionColumns = []string{
		"transaction_id",
		"transaction_date",
		"type",
		"currency",
		"original_amount",
		"converted_amount",
		"created_by",
	}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ── users ───────────────────────────────────────────────────────────────────

func buildFindUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("user_id").
		ToSql()
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(models.User{}.TableName()).
		Columns("name", "username", "password_hash", "role").
		Values(user.Name, user.Username, user.PasswordHash, user.Role.String()).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildUpdateUserQuery leaves password_hash untouched when user carries none.
func buildUpdateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	update := b.Update(models.User{}.TableName()).
		Set("name", user.Name).
		Set("username", user.Username).
		Set("role", user.Role.String())
	if user.PasswordHash != "" {
		update = update.Set("password_hash", user.PasswordHash)
	}

	return update.
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete(models.User{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── transactions ────────────────────────────────────────────────────────────

func buildListTransactionsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(transactionColumns...).
		From(models.Transaction{}.TableName()).
		OrderBy("transaction_date", "transaction_id").
		ToSql()
}

func buildListTransactionsBetweenQuery(b sq.StatementBuilderType, from, to models.Date) (string, []any, error) {
	return b.Select(transactionColumns...).
		From(models.Transaction{}.TableName()).
		Where(sq.And{
			sq.GtOrEq{"transaction_date": from.String()},
			sq.LtOrEq{"transaction_date": to.String()},
		}).
		OrderBy("transaction_date", "transaction_id").
		ToSql()
}

func buildCreateTransactionQuery(b sq.StatementBuilderType, t models.Transaction) (string, []any, error) {
	return b.Insert(models.Transaction{}.TableName()).
		Columns("transaction_date", "type", "currency", "original_amount", "converted_amount", "created_by").
		Values(t.TransactionDate.String(), string(t.Type.Normalize()), t.Currency, t.OriginalAmount, t.ConvertedAmount, t.CreatedBy).
		Suffix(returning(transactionColumns)).
		ToSql()
}

func buildUpdateTransactionQuery(b sq.StatementBuilderType, t models.Transaction) (string, []any, error) {
	return b.Update(models.Transaction{}.TableName()).
		Set("transaction_date", t.TransactionDate.String()).
		Set("type", string(t.Type.Normalize())).
		Set("currency", t.Currency).
		Set("original_amount", t.OriginalAmount).
		Set("converted_amount", t.ConvertedAmount).
		Where(sq.Eq{"transaction_id": t.ID}).
		Suffix(returning(transactionColumns)).
		ToSql()
}

func buildDeleteTransactionQuery(b sq.StatementBuilderType, transactionID int64) (string, []any, error) {
	return b.Delete(models.Transaction{}.TableName()).
		Where(sq.Eq{"transaction_id": transactionID}).
		ToSql()
}
