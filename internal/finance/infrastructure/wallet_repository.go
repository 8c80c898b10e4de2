package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/pfinance/WalletManager/internal/finance/domain"
)

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) FindByID(id string) (*domain.Wallet, error) {
	query := `
		SELECT id, user_id, name, initial_balance, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	var wallet domain.Wallet
	err := r.db.QueryRow(query, id).Scan(&wallet.ID, &wallet.UserID, &wallet.Name, &wallet.InitialBalance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) FindByUser(userID string) ([]domain.Wallet, error) {
	query := `
		SELECT id, user_id, name, initial_balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var wallet domain.Wallet
		if err := rows.Scan(&wallet.ID, &wallet.UserID, &wallet.Name, &wallet.InitialBalance, &wallet.CreatedAt, &wallet.UpdatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}

func (r *WalletRepository) Create(wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, name, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(query, wallet.UserID, wallet.Name, wallet.InitialBalance).
		Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
}

func (r *WalletRepository) Update(wallet *domain.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $1, initial_balance = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(query, wallet.Name, wallet.InitialBalance, wallet.ID)
	return err
}

func (r *WalletRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM wallets WHERE id = $1", id)
	return err
}
