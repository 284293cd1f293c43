package adapter

import "errors"

var (
	// ErrRatesUnavailable is returned when the rates API cannot be reached,
	// answers with a server error, or sends an unreadable body.
	ErrRatesUnavailable = errors.New("exchange rates are unavailable")

	// ErrUnsupportedBase is returned when the rates API does not know the
	// requested base currency.
	ErrUnsupportedBase = errors.New("unsupported base currency")
)
