package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrTokenNotFound = errors.New("token not found")

type Repository interface {
	createUser(user *User) error
	getUserByEmail(email string) (*User, error)
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	userExistsByLoginOrEmail(login, email string) (*User, error)
	getUserByID(id string) (*User, error)
	listUsers() ([]User, error)
	updateUser(user *User) error
	deleteUser(id string) error
	updateEmailVerified(userID string, verified bool) error
	updatePassword(userID, newPasswordHash string) error
	saveToken(userID, token, tokenType string, expiresAt time.Time) error
	getToken(token, tokenType string) (string, time.Time, error)
	deleteToken(userID, tokenType string) error
	deleteExpiredTokens() (int64, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

const userColumns = "id, email, login, password_hash, role, is_verified, two_factor_enabled, created_at, updated_at"

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.Role, &user.IsActive, &user.TwoFactorEnabled, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) createUser(user *User) error {
	query := `
		INSERT INTO users (email, login, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id;
	`
	var id string
	err := r.db.QueryRow(query, user.Email, user.Login, user.PasswordHash, user.Role).Scan(&id)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}

	user.ID = id
	return nil
}

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"
	return scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE login = $1 OR email = $1"
	return scanUser(r.db.QueryRow(query, loginOrEmail))
}

func (r *userRepository) userExistsByLoginOrEmail(login, email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE login = $1 OR email = $2"
	return scanUser(r.db.QueryRow(query, login, email))
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) listUsers() ([]User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %v", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.Role, &user.IsActive, &user.TwoFactorEnabled, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) updateUser(user *User) error {
	query := `
		UPDATE users
		SET login = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(query, user.Login, user.ID)
	if err != nil {
		return fmt.Errorf("could not update user: %v", err)
	}
	return nil
}

func (r *userRepository) deleteUser(id string) error {
	result, err := r.db.Exec("DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("could not delete user: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) updateEmailVerified(userID string, verified bool) error {
	query := `
        UPDATE users
        SET is_verified = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.Exec(query, userID, verified)
	if err != nil {
		return fmt.Errorf("could not update email verification status: %v", err)
	}
	return nil
}

func (r *userRepository) updatePassword(userID, newPasswordHash string) error {
	query := `
        UPDATE users
        SET password_hash = $1, updated_at = NOW()
        WHERE id = $2
    `
	_, err := r.db.Exec(query, newPasswordHash, userID)
	return err
}

func (r *userRepository) saveToken(userID, token, tokenType string, expiresAt time.Time) error {
	query := `
        INSERT INTO user_tokens (user_id, token, type, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, type) DO UPDATE
        SET token = $2, expires_at = $4, created_at = NOW()
    `
	_, err := r.db.Exec(query, userID, token, tokenType, expiresAt)
	if err != nil {
		return fmt.Errorf("could not save token: %v", err)
	}
	return nil
}

func (r *userRepository) getToken(token, tokenType string) (string, time.Time, error) {
	query := `
        SELECT user_id, expires_at
        FROM user_tokens
        WHERE token = $1 AND type = $2
    `

	var userID string
	var expiresAt time.Time
	err := r.db.QueryRow(query, token, tokenType).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, ErrTokenNotFound
		}
		return "", time.Time{}, fmt.Errorf("could not retrieve token: %v", err)
	}
	return userID, expiresAt, nil
}

func (r *userRepository) deleteToken(userID, tokenType string) error {
	_, err := r.db.Exec("DELETE FROM user_tokens WHERE user_id = $1 AND type = $2", userID, tokenType)
	if err != nil {
		return fmt.Errorf("could not delete token: %v", err)
	}
	return nil
}

func (r *userRepository) deleteExpiredTokens() (int64, error) {
	result, err := r.db.Exec("DELETE FROM user_tokens WHERE expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("could not delete expired tokens: %v", err)
	}
	return result.RowsAffected()
}
