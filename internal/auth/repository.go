package auth

import (
	"database/sql"
	"errors"
)

type TwoFactorRepository interface {
	SaveTwoFactorSecret(userID string, secret string) error
	GetTwoFactorSecret(userID string) (string, error)
	EnableTwoFactor(userID string) error
	DisableTwoFactor(userID string) error
}

type twoFactorRepository struct {
	db *sql.DB
}

func NewTwoFactorRepository(db *sql.DB) TwoFactorRepository {
	return &twoFactorRepository{
		db: db,
	}
}

func (r *twoFactorRepository) SaveTwoFactorSecret(userID string, secret string) error {
	query := `
        INSERT INTO user_two_factor_secrets (user_id, encrypted_secret, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET encrypted_secret = EXCLUDED.encrypted_secret,
            created_at = NOW()
    `
	_, err := r.db.Exec(query, userID, secret)
	if err != nil {
		return ErrInternalError
	}
	return nil
}

func (r *twoFactorRepository) GetTwoFactorSecret(userID string) (string, error) {
	var secret string
	query := `
        SELECT encrypted_secret
        FROM user_two_factor_secrets
        WHERE user_id = $1
    `
	err := r.db.QueryRow(query, userID).Scan(&secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUser2FANotEnabled
		}
		return "", ErrInternalError
	}
	return secret, nil
}

func (r *twoFactorRepository) EnableTwoFactor(userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = TRUE,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return ErrInternalError
	}
	return nil
}

func (r *twoFactorRepository) DisableTwoFactor(userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = FALSE,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return ErrInternalError
	}

	query = `
		DELETE FROM user_two_factor_secrets
		WHERE user_id = $1
	`
	_, err = r.db.Exec(query, userID)
	if err != nil {
		return ErrInternalError
	}

	return nil
}
