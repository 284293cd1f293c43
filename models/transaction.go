package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CommonCurrency is the currency every transaction amount is converted to
// before it is stored and aggregated.
const CommonCurrency = "INR"

// TransactionType is the direction of money flow of a ledger entry.
type TransactionType string

const (
	// TransactionCredit is money coming in.
	TransactionCredit TransactionType = "credit"
	// TransactionDebit is money going out.
	TransactionDebit TransactionType = "debit"
)

// Normalize returns the canonical lower-case form of t.
func (t TransactionType) Normalize() TransactionType {
	return TransactionType(strings.ToLower(strings.TrimSpace(string(t))))
}

// IsValid reports whether t (in any casing) is credit or debit.
func (t TransactionType) IsValid() bool {
	n := t.Normalize()
	return n == TransactionCredit || n == TransactionDebit
}

// Transaction is a single ledger entry.
type Transaction struct {
	// ID is the identifier assigned by the persistence layer.
	ID int64 `json:"id,omitempty"`

	// TransactionDate is the calendar day the transaction belongs to.
	TransactionDate Date `json:"transactionDate"`

	// Type is credit or debit.
	Type TransactionType `json:"type"`

	// Currency is the ISO 4217 code of OriginalAmount.
	Currency string `json:"currency"`

	// OriginalAmount is the amount in Currency.
	OriginalAmount decimal.Decimal `json:"originalAmount"`

	// ConvertedAmount is OriginalAmount converted to [CommonCurrency].
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`

	// CreatedBy is the principal name that recorded the transaction.
	CreatedBy string `json:"createdBy,omitempty"`
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}

// dateLayout is the wire and storage layout of [Date].
const dateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day component, always in UTC.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// String returns the YYYY-MM-DD form of d.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements [driver.Valuer]. Dates are bound as YYYY-MM-DD text so
// range comparisons behave the same on every driver.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements [sql.Scanner]. Drivers return DATE columns either as
// time.Time (pgx) or as text (sqlite3).
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
