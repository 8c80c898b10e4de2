package domain

import "time"

// Wallet stores only the balance it was opened with. The current balance is
// never persisted, it is recomputed from the wallet's transactions on demand.
type Wallet struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	InitialBalance float64   `json:"initial_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type WalletRepository interface {
	FindByID(id string) (*Wallet, error)
	FindByUser(userID string) ([]Wallet, error)
	Create(wallet *Wallet) error
	Update(wallet *Wallet) error
	Delete(id string) error
}
