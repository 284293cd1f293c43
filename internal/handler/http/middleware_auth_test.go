package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

func newHandlerWithGate(gate service.GateService) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{GateService: gate},
	}
}

// executeAuth runs the gate and reports what reached the next handler.
func executeAuth(h *Handler, authHeader string) (*httptest.ResponseRecorder, *http.Request) {
	var reached *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)
	return rec, reached
}

func TestAuth_ContinuesUnauthenticated(t *testing.T) {
	admitted := 0
	h := newHandlerWithGate(&fakeGateService{admitFn: func(context.Context, string) (models.Principal, error) {
		admitted++
		return models.Principal{}, fmt.Errorf("%w: %w", service.ErrUnauthenticated, utils.ErrTokenMalformed)
	}})

	tests := []struct {
		name       string
		header     string
		wantAdmits int
	}{
		{name: "no header", header: "", wantAdmits: 0},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantAdmits: 0},
		{name: "bearer without token", header: "Bearer", wantAdmits: 0},
		{name: "malformed token", header: "Bearer not-a-jwt", wantAdmits: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admitted = 0
			rec, reached := executeAuth(h, tt.header)

			require.NotNil(t, reached, "request must continue")
			assert.Equal(t, http.StatusOK, rec.Code)
			_, ok := utils.PrincipalFromContext(reached.Context())
			assert.False(t, ok)
			assert.Equal(t, tt.wantAdmits, admitted)
		})
	}
}

func TestAuth_AttachesPrincipalAndClientIP(t *testing.T) {
	var seenIP string
	h := newHandlerWithGate(&fakeGateService{admitFn: func(ctx context.Context, token string) (models.Principal, error) {
		seenIP = utils.ClientIPFromContext(ctx)
		assert.Equal(t, "good-token", token)
		return userPrincipal, nil
	}})

	rec, reached := executeAuth(h, "bearer good-token")

	require.NotNil(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	p, ok := utils.PrincipalFromContext(reached.Context())
	require.True(t, ok)
	assert.Equal(t, userPrincipal, p)
	assert.Equal(t, "203.0.113.7", seenIP)
}

func TestAuth_TerminalRejections(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantRetryAfter string
		wantMessage    string
	}{
		{
			name:        "unknown principal",
			err:         service.ErrIdentityNotFound,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: service.ErrIdentityNotFound.Error(),
		},
		{
			name:        "strict policy",
			err:         fmt.Errorf("%w: %w", service.ErrTokenRejected, utils.ErrTokenExpired),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: service.ErrTokenRejected.Error(),
		},
		{
			name:           "budget exhausted",
			err:            &service.RateLimitedError{RetryAfter: 14200 * time.Millisecond},
			wantStatus:     http.StatusTooManyRequests,
			wantRetryAfter: "15",
			wantMessage:    service.ErrRateLimitExceeded.Error(),
		},
		{
			name:        "quota store down",
			err:         fmt.Errorf("%w: dial tcp", ratelimit.ErrQuotaStoreUnavailable),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: ratelimit.ErrQuotaStoreUnavailable.Error(),
		},
		{
			name:        "identity store down",
			err:         fmt.Errorf("%w: unexpected DB error", service.ErrIdentityStoreUnavailable),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: service.ErrIdentityStoreUnavailable.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithGate(&fakeGateService{admitFn: func(context.Context, string) (models.Principal, error) {
				return models.Principal{}, tt.err
			}})

			rec, reached := executeAuth(h, "Bearer some.jwt.token")

			assert.Nil(t, reached, "chain must stop")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))

			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)
		})
	}
}

func TestRequireAuthority(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	tests := []struct {
		name       string
		required   models.Authority
		principal  *models.Principal
		wantStatus int
	}{
		{name: "public route, no principal", required: models.AuthorityNone, wantStatus: http.StatusOK},
		{name: "public route, principal", required: models.AuthorityNone, principal: &employeePrincipal, wantStatus: http.StatusOK},
		{name: "missing principal", required: models.AuthorityUser, wantStatus: http.StatusUnauthorized},
		{name: "matching authority", required: models.AuthorityUser, principal: &userPrincipal, wantStatus: http.StatusOK},
		{name: "employee on user route", required: models.AuthorityUser, principal: &employeePrincipal, wantStatus: http.StatusForbidden},
		{name: "user on employee route", required: models.AuthorityEmployee, principal: &userPrincipal, wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.principal != nil {
				req = req.WithContext(utils.WithPrincipal(req.Context(), *tt.principal))
			}
			rec := httptest.NewRecorder()
			h.requireAuthority(tt.required)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, "1", retryAfterSeconds(0))
	assert.Equal(t, "1", retryAfterSeconds(300*time.Millisecond))
	assert.Equal(t, "15", retryAfterSeconds(15*time.Second))
	assert.Equal(t, "16", retryAfterSeconds(15*time.Second+time.Nanosecond))
}

func TestStatusFromError(t *testing.T) {
	status, message := statusFromError(fmt.Errorf("wrapped: %w", service.ErrEmployeeDebitForbidden))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, service.ErrEmployeeDebitForbidden.Error(), message)

	status, message = statusFromError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), message)
}
