package infrastructure

import (
	"fmt"
	"strings"

	"github.com/pfinance/WalletManager/internal/finance/domain"
)

// In-memory repositories for service and handler tests.

type MockCategoryRepository struct {
	Categories []domain.Category
	FailWith   error
	nextID     int
}

func (m *MockCategoryRepository) FindAll() ([]domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.Categories, nil
}

func (m *MockCategoryRepository) FindByID(id string) (*domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			return &m.Categories[i], nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByNameContaining(name string) ([]domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var matched []domain.Category
	for _, category := range m.Categories {
		if strings.Contains(strings.ToUpper(category.Name), strings.ToUpper(name)) {
			matched = append(matched, category)
		}
	}
	return matched, nil
}

func (m *MockCategoryRepository) FindByNameAndUser(name, userID string) (*domain.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Categories {
		if m.Categories[i].Name == name && m.Categories[i].UserID == userID {
			return &m.Categories[i], nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) Create(category *domain.Category) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.nextID++
	category.ID = fmt.Sprintf("cat-%d", m.nextID)
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryRepository) Update(category *domain.Category) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for i := range m.Categories {
		if m.Categories[i].ID == category.ID {
			m.Categories[i] = *category
			return nil
		}
	}
	return nil
}

func (m *MockCategoryRepository) Delete(id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for i := range m.Categories {
		if m.Categories[i].ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return nil
}

type MockWalletRepository struct {
	Wallets  []domain.Wallet
	FailWith error
	nextID   int
}

func (m *MockWalletRepository) FindByID(id string) (*domain.Wallet, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	for i := range m.Wallets {
		if m.Wallets[i].ID == id {
			return &m.Wallets[i], nil
		}
	}
	return nil, nil
}

func (m *MockWalletRepository) FindByUser(userID string) ([]domain.Wallet, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var wallets []domain.Wallet
	for _, wallet := range m.Wallets {
		if wallet.UserID == userID {
			wallets = append(wallets, wallet)
		}
	}
	return wallets, nil
}

func (m *MockWalletRepository) Create(wallet *domain.Wallet) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.nextID++
	wallet.ID = fmt.Sprintf("wallet-%d", m.nextID)
	m.Wallets = append(m.Wallets, *wallet)
	return nil
}

func (m *MockWalletRepository) Update(wallet *domain.Wallet) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for i := range m.Wallets {
		if m.Wallets[i].ID == wallet.ID {
			m.Wallets[i] = *wallet
			return nil
		}
	}
	return nil
}

func (m *MockWalletRepository) Delete(id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	for i := range m.Wallets {
		if m.Wallets[i].ID == id {
			m.Wallets = append(m.Wallets[:i], m.Wallets[i+1:]...)
			return nil
		}
	}
	return nil
}

type MockTransactionRepository struct {
	Transactions []domain.Transaction
	FailWith     error
}

func (m *MockTransactionRepository) Save(transaction *domain.Transaction) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionRepository) FindByWallet(walletID string) ([]domain.Transaction, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.FromWallet == walletID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}
