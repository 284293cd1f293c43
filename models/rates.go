package models

import "github.com/shopspring/decimal"

// ExchangeRates is the response of the third-party rates API: the value of
// one unit of Base expressed in every currency of Rates.
type ExchangeRates struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}
