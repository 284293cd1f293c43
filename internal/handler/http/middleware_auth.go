package http

import (
	"errors"
	"net"
	"net/http"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

// auth is the authentication gate. It never rejects a request for lacking
// credentials: a missing or malformed bearer token continues without a
// principal and the per-route authority check decides. A token naming a
// known principal is admitted by [service.GateService.Admit]; terminal
// rejections (unknown principal, exhausted budget, unavailable stores)
// stop the chain here.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := utils.WithClientIP(r.Context(), clientIP(r))
		r = r.WithContext(ctx)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("continuing unauthenticated")
			next.ServeHTTP(w, r)
			return
		}

		principal, err := h.services.GateService.Admit(ctx, tokenString)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				log.Debug().Err(err).Msg("continuing unauthenticated")
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, principal)))
	})
}

// requireAuthority rejects requests whose principal does not hold required:
// 401 without a principal, 403 with a different authority.
func (h *Handler) requireAuthority(required models.Authority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if required == models.AuthorityNone {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := utils.PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, r, errAuthenticationRequired)
				return
			}
			if !principal.Has(required) {
				writeError(w, r, errForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr, which RealIP has already
// replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
