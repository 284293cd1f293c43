package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.services.TransactionService.ListTransactions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, transactions, http.StatusOK)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.services.TransactionService.CreateTransaction)
}

func (h *Handler) createEmployeeTransaction(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.services.TransactionService.CreateEmployeeTransaction)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request,
	createFn func(context.Context, models.Transaction) (models.Transaction, error)) {
	var transaction models.Transaction
	if err := decodeJSON(w, r, &transaction); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := createFn(r.Context(), transaction)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := pathID(r, "transactionId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var transaction models.Transaction
	if err := decodeJSON(w, r, &transaction); err != nil {
		writeError(w, r, err)
		return
	}
	transaction.ID = transactionID

	updated, err := h.services.TransactionService.UpdateTransaction(r.Context(), transaction)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := pathID(r, "transactionId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.TransactionService.DeleteTransaction(r.Context(), transactionID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
