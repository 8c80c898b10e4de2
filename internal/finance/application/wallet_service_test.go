package application

import (
	"math"
	"testing"
	"time"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
	"github.com/pfinance/WalletManager/internal/finance/infrastructure"
	"github.com/stretchr/testify/assert"
)

func areEqualRounded(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestRecalculateBalance_EmptyTransactions(t *testing.T) {
	assert.Equal(t, 250.0, RecalculateBalance(250.0, nil))
	assert.Equal(t, -10.5, RecalculateBalance(-10.5, []domain.Transaction{}))
}

func TestRecalculateBalance_CreditsAndDebits(t *testing.T) {
	transactions := []domain.Transaction{
		{CreditValue: 50, DebitValue: 0},
		{CreditValue: 0, DebitValue: 30},
	}
	assert.Equal(t, 120.0, RecalculateBalance(100, transactions))
}

func TestRecalculateBalance_OrderIndependent(t *testing.T) {
	forward := []domain.Transaction{
		{CreditValue: 120.35, DebitValue: 0},
		{CreditValue: 0, DebitValue: 45.1},
		{CreditValue: 9.99, DebitValue: 0},
		{CreditValue: 0, DebitValue: 200},
	}
	reversed := []domain.Transaction{forward[3], forward[2], forward[1], forward[0]}

	a := RecalculateBalance(1000, forward)
	b := RecalculateBalance(1000, reversed)
	assert.True(t, areEqualRounded(a, b), "expected order-independent result, got %v and %v", a, b)
	assert.True(t, areEqualRounded(a, 1000+120.35-45.1+9.99-200))
}

func TestRecalculateBalance_FloatRounding(t *testing.T) {
	// 0.1+0.2 style accumulation must stay within a cent of the exact sum.
	var transactions []domain.Transaction
	for i := 0; i < 100; i++ {
		transactions = append(transactions, domain.Transaction{CreditValue: 0.1})
	}
	assert.True(t, areEqualRounded(10.0, RecalculateBalance(0, transactions)))
}

func TestCurrentBalance_FoldsStoredTransactions(t *testing.T) {
	walletRepo := &infrastructure.MockWalletRepository{
		Wallets: []domain.Wallet{{ID: "w1", UserID: "u1", Name: "Checking", InitialBalance: 100}},
	}
	transactionRepo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			{ID: "t1", FromWallet: "w1", CreditValue: 50, Date: time.Now()},
			{ID: "t2", FromWallet: "w1", DebitValue: 30, Date: time.Now()},
			{ID: "t3", FromWallet: "other", CreditValue: 999, Date: time.Now()},
		},
	}
	service := NewWalletService(walletRepo, transactionRepo)

	balance, err := service.CurrentBalance("w1")
	assert.NoError(t, err)
	assert.Equal(t, 120.0, balance)
}

func TestCurrentBalance_WalletNotFound(t *testing.T) {
	service := NewWalletService(&infrastructure.MockWalletRepository{}, &infrastructure.MockTransactionRepository{})

	_, err := service.CurrentBalance("missing")
	assert.True(t, financeErrors.IsNotFound(err))
}

func TestUpdateWallet_RecomputesBalance(t *testing.T) {
	walletRepo := &infrastructure.MockWalletRepository{
		Wallets: []domain.Wallet{{ID: "w1", UserID: "u1", Name: "Checking", InitialBalance: 100}},
	}
	transactionRepo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			{ID: "t1", FromWallet: "w1", CreditValue: 25},
		},
	}
	service := NewWalletService(walletRepo, transactionRepo)

	wallet, balance, err := service.UpdateWallet("w1", "u1", "Main", 500)
	assert.NoError(t, err)
	assert.Equal(t, "Main", wallet.Name)
	assert.Equal(t, 525.0, balance)
}

func TestUpdateWallet_OtherUsersWallet(t *testing.T) {
	walletRepo := &infrastructure.MockWalletRepository{
		Wallets: []domain.Wallet{{ID: "w1", UserID: "u1", InitialBalance: 100}},
	}
	service := NewWalletService(walletRepo, &infrastructure.MockTransactionRepository{})

	_, _, err := service.UpdateWallet("w1", "u2", "Main", 500)
	assert.True(t, financeErrors.IsUnauthorized(err))
}
