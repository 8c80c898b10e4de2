package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type TransactionServiceInterface interface {
	RecordTransaction(transaction *domain.Transaction, userID string) (*domain.Transaction, error)
	ListByWallet(walletID, userID string) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransactionHandler) respondServiceError(w http.ResponseWriter, err error) {
	status := financeErrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.respondError(w, status, "Internal server error")
		return
	}
	h.respondError(w, status, err.Error())
}

func (h *TransactionHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string    `json:"description"`
		CreditValue float64   `json:"credit_value"`
		DebitValue  float64   `json:"debit_value"`
		Date        time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transaction, err := h.service.RecordTransaction(&domain.Transaction{
		FromWallet:  r.PathValue("walletID"),
		Description: req.Description,
		CreditValue: req.CreditValue,
		DebitValue:  req.DebitValue,
		Date:        req.Date,
	}, userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":      "success",
		"transaction": transaction,
	})
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.service.ListByWallet(r.PathValue("walletID"), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "success",
		"transactions": transactions,
	})
}
