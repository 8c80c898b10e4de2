package interfaces

import (
	"errors"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type MockCategoryService struct {
	categories []domain.Category
	shouldFail bool
}

func (m *MockCategoryService) GetAllCategories() ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.categories, nil
}

func (m *MockCategoryService) GetCategoryByID(id string) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			return &m.categories[i], nil
		}
	}
	return nil, nil
}

func (m *MockCategoryService) GetCategoriesByName(name string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.categories, nil
}

func (m *MockCategoryService) CreateCategory(category *domain.Category) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for _, existing := range m.categories {
		if existing.Name == category.Name && existing.UserID == category.UserID {
			return nil, financeErrors.NewDuplicateName("This user already has a category named " + category.Name)
		}
	}
	category.ID = "cat-new"
	m.categories = append(m.categories, *category)
	return category, nil
}

func (m *MockCategoryService) UpdateCategory(id, userID, name, transactionType string) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories[i].Name = name
			m.categories[i].TransactionType = transactionType
			return &m.categories[i], nil
		}
	}
	return nil, financeErrors.NewNotFound("Category not found")
}

func (m *MockCategoryService) DeleteCategory(id string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return financeErrors.NewNotFound("Category not found")
}

type MockWalletService struct {
	wallets    []domain.Wallet
	balance    float64
	shouldFail bool
}

func (m *MockWalletService) CreateWallet(wallet *domain.Wallet) (*domain.Wallet, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	wallet.ID = "wallet-new"
	m.wallets = append(m.wallets, *wallet)
	return wallet, nil
}

func (m *MockWalletService) GetWallet(walletID, userID string) (*domain.Wallet, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i := range m.wallets {
		if m.wallets[i].ID == walletID {
			if m.wallets[i].UserID != userID {
				return nil, financeErrors.NewUnauthorized("Unauthorized access")
			}
			return &m.wallets[i], nil
		}
	}
	return nil, financeErrors.NewNotFound("Wallet not found")
}

func (m *MockWalletService) ListWallets(userID string) ([]domain.Wallet, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.wallets, nil
}

func (m *MockWalletService) UpdateWallet(walletID, userID, name string, initialBalance float64) (*domain.Wallet, float64, error) {
	wallet, err := m.GetWallet(walletID, userID)
	if err != nil {
		return nil, 0, err
	}
	wallet.Name = name
	wallet.InitialBalance = initialBalance
	return wallet, m.balance, nil
}

func (m *MockWalletService) DeleteWallet(walletID, userID string) error {
	_, err := m.GetWallet(walletID, userID)
	return err
}

func (m *MockWalletService) CurrentBalance(walletID string) (float64, error) {
	if m.shouldFail {
		return 0, errors.New("service error")
	}
	return m.balance, nil
}

type MockTransactionService struct {
	transactions []domain.Transaction
	shouldFail   bool
}

func (m *MockTransactionService) RecordTransaction(transaction *domain.Transaction, userID string) (*domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	transaction.ID = "tx-new"
	m.transactions = append(m.transactions, *transaction)
	return transaction, nil
}

func (m *MockTransactionService) ListByWallet(walletID, userID string) ([]domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.transactions, nil
}
