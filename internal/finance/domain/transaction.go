package domain

import (
	"math"
	"time"

	"github.com/pfinance/WalletManager/internal/finance/errors"
)

// Transaction is immutable once recorded. It affects its wallet through
// exactly one of CreditValue or DebitValue, never both nonzero.
type Transaction struct {
	ID          string    `json:"id"`
	FromWallet  string    `json:"from_wallet"`
	Description string    `json:"description"`
	CreditValue float64   `json:"credit_value"`
	DebitValue  float64   `json:"debit_value"`
	Date        time.Time `json:"date"`
}

type TransactionRepository interface {
	Save(transaction *Transaction) error
	FindByWallet(walletID string) ([]Transaction, error)
}

func (t *Transaction) Validate() error {
	if t.CreditValue < 0 || t.DebitValue < 0 {
		return errors.NewValidationError("Credit and debit values must not be negative")
	}
	if t.CreditValue > 0 && t.DebitValue > 0 {
		return errors.NewValidationError("A transaction must carry either a credit or a debit, not both")
	}
	if t.CreditValue == 0 && t.DebitValue == 0 {
		return errors.NewValidationError("A transaction must carry a nonzero credit or debit")
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.CreditValue = math.Round(t.CreditValue*100) / 100
	t.DebitValue = math.Round(t.DebitValue*100) / 100
}
