package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ReportPeriod names an aggregation window ending today.
type ReportPeriod string

const (
	// PeriodWeekly covers the last 7 days.
	PeriodWeekly ReportPeriod = "weekly"
	// PeriodMonthly covers the last calendar month.
	PeriodMonthly ReportPeriod = "monthly"
	// PeriodYearly covers the last calendar year.
	PeriodYearly ReportPeriod = "yearly"
)

// Title returns the human-readable report name, e.g. "Weekly Report".
func (p ReportPeriod) Title() string {
	s := string(p)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Report"
}

// Report is the aggregated cash flow for a period, in [CommonCurrency].
type Report struct {
	Period      string          `json:"period"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	NetFlow     decimal.Decimal `json:"netFlow"`
}
