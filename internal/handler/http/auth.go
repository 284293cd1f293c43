package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var authRequest models.AuthRequest
	if err := decodeJSON(w, r, &authRequest); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Authenticate(ctx, authRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", token.Subject).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}
