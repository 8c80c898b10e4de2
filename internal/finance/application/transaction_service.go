package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type TransactionService struct {
	repo       domain.TransactionRepository
	walletRepo domain.WalletRepository
}

func NewTransactionService(repo domain.TransactionRepository, walletRepo domain.WalletRepository) *TransactionService {
	return &TransactionService{repo: repo, walletRepo: walletRepo}
}

// RecordTransaction appends a transaction to the caller's wallet. Recorded
// transactions are never mutated afterwards.
func (s *TransactionService) RecordTransaction(transaction *domain.Transaction, userID string) (*domain.Transaction, error) {
	wallet, err := s.walletRepo.FindByID(transaction.FromWallet)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, financeErrors.NewNotFound("Wallet not found")
	}
	if wallet.UserID != userID {
		return nil, financeErrors.NewUnauthorized("Unauthorized access")
	}

	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if transaction.Date.IsZero() {
		transaction.Date = time.Now().UTC()
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(transaction); err != nil {
		return nil, financeErrors.NewCreationFailed("Could not record transaction")
	}
	return transaction, nil
}

func (s *TransactionService) ListByWallet(walletID, userID string) ([]domain.Transaction, error) {
	wallet, err := s.walletRepo.FindByID(walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, financeErrors.NewNotFound("Wallet not found")
	}
	if wallet.UserID != userID {
		return nil, financeErrors.NewUnauthorized("Unauthorized access")
	}
	return s.repo.FindByWallet(walletID)
}
