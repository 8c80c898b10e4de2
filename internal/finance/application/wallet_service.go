package application

import (
	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type WalletService struct {
	repo            domain.WalletRepository
	transactionRepo domain.TransactionRepository
}

func NewWalletService(repo domain.WalletRepository, transactionRepo domain.TransactionRepository) *WalletService {
	return &WalletService{repo: repo, transactionRepo: transactionRepo}
}

// RecalculateBalance folds the wallet's transactions into a running balance
// starting from initialBalance. A positive credit adds, otherwise the debit
// subtracts. Under the one-of-credit-or-debit invariant the result does not
// depend on transaction order. Pure, no persistence of the result.
func RecalculateBalance(initialBalance float64, transactions []domain.Transaction) float64 {
	balance := initialBalance
	for _, transaction := range transactions {
		if transaction.CreditValue > 0 {
			balance += transaction.CreditValue
		} else {
			balance -= transaction.DebitValue
		}
	}
	return balance
}

// CurrentBalance recomputes the wallet's balance from its initial balance and
// every transaction referencing it. Transactions inserted concurrently with
// the fetch may or may not be included, no snapshot is taken.
func (s *WalletService) CurrentBalance(walletID string) (float64, error) {
	wallet, err := s.repo.FindByID(walletID)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, financeErrors.NewNotFound("Wallet not found")
	}

	transactions, err := s.transactionRepo.FindByWallet(walletID)
	if err != nil {
		return 0, err
	}
	return RecalculateBalance(wallet.InitialBalance, transactions), nil
}

func (s *WalletService) CreateWallet(wallet *domain.Wallet) (*domain.Wallet, error) {
	if wallet.Name == "" {
		return nil, financeErrors.NewValidationError("Wallet name must not be empty")
	}
	if err := s.repo.Create(wallet); err != nil {
		return nil, financeErrors.NewCreationFailed("Could not create wallet")
	}
	return wallet, nil
}

func (s *WalletService) GetWallet(walletID, userID string) (*domain.Wallet, error) {
	wallet, err := s.repo.FindByID(walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, financeErrors.NewNotFound("Wallet not found")
	}
	if wallet.UserID != userID {
		return nil, financeErrors.NewUnauthorized("Unauthorized access")
	}
	return wallet, nil
}

func (s *WalletService) ListWallets(userID string) ([]domain.Wallet, error) {
	return s.repo.FindByUser(userID)
}

// UpdateWallet changes the wallet's name and initial balance and returns the
// freshly recomputed current balance, since changing the initial balance
// shifts every derived figure.
func (s *WalletService) UpdateWallet(walletID, userID, name string, initialBalance float64) (*domain.Wallet, float64, error) {
	wallet, err := s.GetWallet(walletID, userID)
	if err != nil {
		return nil, 0, err
	}

	if name != "" {
		wallet.Name = name
	}
	wallet.InitialBalance = initialBalance
	if err := s.repo.Update(wallet); err != nil {
		return nil, 0, err
	}

	transactions, err := s.transactionRepo.FindByWallet(walletID)
	if err != nil {
		return nil, 0, err
	}
	return wallet, RecalculateBalance(wallet.InitialBalance, transactions), nil
}

func (s *WalletService) DeleteWallet(walletID, userID string) error {
	if _, err := s.GetWallet(walletID, userID); err != nil {
		return err
	}
	return s.repo.Delete(walletID)
}
