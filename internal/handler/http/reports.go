package http

import (
	"net/http"

	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

func (h *Handler) report(period models.ReportPeriod) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := h.services.ReportService.Generate(r.Context(), period)
		if err != nil {
			writeError(w, r, err)
			return
		}

		utils.WriteJSON(w, reports, http.StatusOK)
	}
}
