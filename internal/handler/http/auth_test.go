// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/models"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authErr        error
		wantStatus     int
		wantError      string
		wantRetryAfter string
	}{
		{
			name:       "success",
			body:       `{"username":"alice","password":"s3cret"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid JSON",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantError:  ErrInvalidJSON.Error(),
		},
		{
			name:       "empty fields",
			body:       `{"username":""}`,
			authErr:    service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantError:  service.ErrInvalidDataProvided.Error(),
		},
		{
			name:       "bad credentials",
			body:       `{"username":"alice","password":"nope"}`,
			authErr:    service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid username/password",
		},
		{
			name:       "identity store down",
			body:       `{"username":"alice","password":"s3cret"}`,
			authErr:    fmt.Errorf("%w: timeout", service.ErrIdentityStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantError:  service.ErrIdentityStoreUnavailable.Error(),
		},
		{
			name:           "login budget exhausted",
			body:           `{"username":"alice","password":"s3cret"}`,
			authErr:        &service.RateLimitedError{RetryAfter: 3 * time.Second},
			wantStatus:     http.StatusTooManyRequests,
			wantError:      service.ErrRateLimitExceeded.Error(),
			wantRetryAfter: "3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{authenticateFn: func(_ context.Context, req models.AuthRequest) (models.Token, error) {
				if tt.authErr != nil {
					return models.Token{}, tt.authErr
				}
				return models.Token{SignedString: "signed." + req.Username, Subject: req.Username}, nil
			}}
			router := newTestRouter(t, &service.Services{AuthService: auth})

			rec := serve(router, http.MethodPost, "/kirana/authenticate", "", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))

			if tt.wantError == "" {
				var resp models.TokenResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "signed.alice", resp.Token)
				assert.Equal(t, "Bearer signed.alice", rec.Header().Get("Authorization"))
				return
			}

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}
