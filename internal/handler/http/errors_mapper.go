package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/kirana-ledger/internal/adapter"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is matched in order; the first target found in the chain
// decides the status and the message written to the client.
var errorStatuses = []errorStatus{
	{service.ErrRateLimitExceeded, http.StatusTooManyRequests},
	{ratelimit.ErrQuotaStoreUnavailable, http.StatusServiceUnavailable},
	{service.ErrIdentityStoreUnavailable, http.StatusServiceUnavailable},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrIdentityNotFound, http.StatusUnauthorized},
	{service.ErrTokenRejected, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{errAuthenticationRequired, http.StatusUnauthorized},

	{errForbidden, http.StatusForbidden},
	{service.ErrEmployeeDebitForbidden, http.StatusForbidden},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidID, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidUser, http.StatusBadRequest},
	{service.ErrInvalidTransaction, http.StatusBadRequest},
	{service.ErrUnsupportedCurrency, http.StatusBadRequest},
	{service.ErrInvalidPeriod, http.StatusBadRequest},

	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrTransactionNotFound, http.StatusNotFound},
	{store.ErrUsernameAlreadyExists, http.StatusConflict},

	{adapter.ErrRatesUnavailable, http.StatusBadGateway},
	{adapter.ErrUnsupportedBase, http.StatusBadGateway},
}

// statusFromError returns the HTTP status for err and the client-facing
// message. Unknown errors are reported as 500 without details.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and writes the mapped JSON error response. A rate
// limit refusal also carries Retry-After.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, message := statusFromError(err)

	var limited *service.RateLimitedError
	if errors.As(err, &limited) {
		w.Header().Set("Retry-After", retryAfterSeconds(limited.RetryAfter))
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Str("uri", r.RequestURI).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}

// retryAfterSeconds rounds d up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) string {
	seconds := int64(math.Ceil(d.Seconds()))
	return strconv.FormatInt(max(seconds, 1), 10)
}
