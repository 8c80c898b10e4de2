package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type WalletServiceInterface interface {
	CreateWallet(wallet *domain.Wallet) (*domain.Wallet, error)
	GetWallet(walletID, userID string) (*domain.Wallet, error)
	ListWallets(userID string) ([]domain.Wallet, error)
	UpdateWallet(walletID, userID, name string, initialBalance float64) (*domain.Wallet, float64, error)
	DeleteWallet(walletID, userID string) error
	CurrentBalance(walletID string) (float64, error)
}

type WalletHandler struct {
	service      WalletServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewWalletHandler(
	service WalletServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *WalletHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &WalletHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *WalletHandler) respondServiceError(w http.ResponseWriter, err error) {
	status := financeErrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.respondError(w, status, "Internal server error")
		return
	}
	h.respondError(w, status, err.Error())
}

func requestUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	return userID, ok
}

func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string  `json:"name"`
		InitialBalance float64 `json:"initial_balance"`
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

	wallet, err := h.service.CreateWallet(&domain.Wallet{
		UserID:         userID,
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"wallet": wallet,
	})
}

func (h *WalletHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wallets, err := h.service.ListWallets(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve wallets")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"wallets": wallets,
	})
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wallet, err := h.service.GetWallet(r.PathValue("walletID"), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"wallet": wallet,
	})
}

// GetBalance returns the recomputed balance; nothing is written back, the
// stored initial balance stays the only ground truth.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	walletID := r.PathValue("walletID")
	if _, err := h.service.GetWallet(walletID, userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	balance, err := h.service.CurrentBalance(walletID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"wallet_id":       walletID,
			"current_balance": balance,
		},
	})
}

func (h *WalletHandler) UpdateWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string  `json:"name"`
		InitialBalance float64 `json:"initial_balance"`
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

	wallet, balance, err := h.service.UpdateWallet(r.PathValue("walletID"), userID, req.Name, req.InitialBalance)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"wallet": wallet,
		"data": map[string]interface{}{
			"current_balance": balance,
		},
	})
}

func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteWallet(r.PathValue("walletID"), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Wallet deleted successfully",
	})
}
