package infrastructure

import (
	"database/sql"

	"github.com/pfinance/WalletManager/internal/finance/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, from_wallet, description, credit_value, debit_value, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query, transaction.ID, transaction.FromWallet, transaction.Description,
		transaction.CreditValue, transaction.DebitValue, transaction.Date)
	return err
}

// FindByWallet returns the wallet's transactions ordered by date then id, so
// a balance replay is deterministic and usable as an audit trail.
func (r *TransactionRepository) FindByWallet(walletID string) ([]domain.Transaction, error) {
	query := `
		SELECT id, from_wallet, description, credit_value, debit_value, date
		FROM transactions
		WHERE from_wallet = $1
		ORDER BY date, id
	`
	rows, err := r.db.Query(query, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.FromWallet, &transaction.Description,
			&transaction.CreditValue, &transaction.DebitValue, &transaction.Date); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
