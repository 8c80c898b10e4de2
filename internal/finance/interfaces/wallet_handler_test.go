package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	"github.com/stretchr/testify/assert"
)

func TestGetBalance_ReturnsRecomputedBalance(t *testing.T) {
	mockService := &MockWalletService{
		wallets: []domain.Wallet{{ID: "w1", UserID: "u1", Name: "Checking", InitialBalance: 100}},
		balance: 120,
	}
	handler := NewWalletHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/wallets/w1/balance", "", "u1")
	req.SetPathValue("walletID", "w1")
	w := httptest.NewRecorder()
	handler.GetBalance(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			WalletID       string  `json:"wallet_id"`
			CurrentBalance float64 `json:"current_balance"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "w1", response.Data.WalletID)
	assert.Equal(t, 120.0, response.Data.CurrentBalance)
}

func TestGetBalance_OtherUsersWallet(t *testing.T) {
	mockService := &MockWalletService{
		wallets: []domain.Wallet{{ID: "w1", UserID: "u1"}},
	}
	handler := NewWalletHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/wallets/w1/balance", "", "u2")
	req.SetPathValue("walletID", "w1")
	w := httptest.NewRecorder()
	handler.GetBalance(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestUpdateWallet_ReturnsRecalculatedBalance(t *testing.T) {
	mockService := &MockWalletService{
		wallets: []domain.Wallet{{ID: "w1", UserID: "u1", Name: "Checking", InitialBalance: 100}},
		balance: 525,
	}
	handler := NewWalletHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPut, "/wallets/w1", `{"name":"Main","initial_balance":500}`, "u1")
	req.SetPathValue("walletID", "w1")
	w := httptest.NewRecorder()
	handler.UpdateWallet(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Wallet domain.Wallet `json:"wallet"`
		Data   struct {
			CurrentBalance float64 `json:"current_balance"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Main", response.Wallet.Name)
	assert.Equal(t, 525.0, response.Data.CurrentBalance)
}

func TestCreateWallet_Success(t *testing.T) {
	handler := NewWalletHandler(&MockWalletService{}, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPost, "/wallets", `{"name":"Savings","initial_balance":10}`, "u1")
	w := httptest.NewRecorder()
	handler.CreateWallet(w, req)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestRecordTransaction_RejectsBothValues(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPost, "/wallets/w1/transactions", `{"credit_value":10,"debit_value":5}`, "u1")
	req.SetPathValue("walletID", "w1")
	w := httptest.NewRecorder()
	handler.RecordTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestRecordTransaction_Success(t *testing.T) {
	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPost, "/wallets/w1/transactions", `{"description":"salary","credit_value":1500,"date":"2024-05-01T00:00:00Z"}`, "u1")
	req.SetPathValue("walletID", "w1")
	w := httptest.NewRecorder()
	handler.RecordTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Transaction domain.Transaction `json:"transaction"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "w1", response.Transaction.FromWallet)
	assert.Equal(t, 1500.0, response.Transaction.CreditValue)
}
