package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	emailService "github.com/pfinance/WalletManager/internal/email"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 254
	minEmailLength = 3
	maxLoginLength = 30
	minLoginLength = 5
	bcryptCost     = 12

	RoleAdmin   = "admin"
	RoleRegular = "regular"

	TokenTypeVerify = "verify"
	TokenTypeReset  = "reset"

	verifyTokenDuration = 24 * time.Hour
	resetTokenDuration  = time.Hour
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrLoginLength        = fmt.Errorf("login is too long or too short, max length: %d, min length: %d", maxLoginLength, minLoginLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrInternalError      = errors.New("internal Server Error")
	ErrUserAlreadyActive  = errors.New("user already verified")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnauthorizedAccess = errors.New("unauthorized access")
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Login            string    `json:"login"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	IsActive         bool      `json:"is_active"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Service interface {
	Register(email, login, password, host string) (*User, error)
	VerifyEmail(token string) error
	ForgotPassword(email, host string) error
	ResetPassword(token, newPassword string) error
	GetAll() ([]User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByLoginOrEmail(loginOrEmail string) (*User, error)
	Update(userID, login string) (*User, error)
	Delete(userID string) error
	PurgeExpiredTokens() (int64, error)
}

type service struct {
	repo         Repository
	emailService emailService.EmailSender
}

func NewUserService(repo Repository, emailService emailService.EmailSender) Service {
	return &service{
		repo:         repo,
		emailService: emailService,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

func generateToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}

func (s *service) Register(email, login, password, host string) (*User, error) {
	err := validateEmailAddress(email)
	if err != nil {
		return nil, err
	}

	if len(login) == 0 {
		parts := strings.Split(email, "@")
		if len(parts) < 2 {
			return nil, ErrInvalidEmail
		}
		login = parts[0]
	} else if len(login) > maxLoginLength || len(login) < minLoginLength {
		return nil, ErrLoginLength
	}

	existingUser, err := s.repo.userExistsByLoginOrEmail(login, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}
	if existingUser != nil {
		if existingUser.Email == email {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrLoginAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		Role:         RoleRegular,
	}

	if err := s.repo.createUser(user); err != nil {
		fmt.Println("Error during creating the user: ", err)
		return nil, ErrInternalError
	}

	if err := s.sendVerificationLink(user, host); err != nil {
		fmt.Println("Error during sending verification email: ", err)
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) sendVerificationLink(user *User, host string) error {
	token, err := generateToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(verifyTokenDuration)
	if err := s.repo.saveToken(user.ID, token, TokenTypeVerify, expiresAt); err != nil {
		return err
	}

	s.emailService.QueueEmail(user.Email, emailService.VerificationLinkData{
		UserName: user.Login,
		Link:     fmt.Sprintf("https://%s/api/users/verify-user?token=%s", host, token),
	})
	return nil
}

func (s *service) VerifyEmail(token string) error {
	userID, expiresAt, err := s.repo.getToken(token, TokenTypeVerify)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return ErrInternalError
	}

	if time.Now().UTC().After(expiresAt) {
		return ErrTokenExpired
	}

	user, err := s.repo.getUserByID(userID)
	if err != nil {
		return ErrInternalError
	}
	if user.IsActive {
		return ErrUserAlreadyActive
	}

	if err := s.repo.updateEmailVerified(userID, true); err != nil {
		return ErrInternalError
	}
	_ = s.repo.deleteToken(userID, TokenTypeVerify)
	return nil
}

// ForgotPassword queues a reset link when the address belongs to a user.
// Callers respond identically either way so the endpoint cannot be used to
// probe which addresses are registered.
func (s *service) ForgotPassword(email, host string) error {
	user, err := s.repo.getUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return ErrInternalError
	}

	token, err := generateToken()
	if err != nil {
		return ErrInternalError
	}

	expiresAt := time.Now().UTC().Add(resetTokenDuration)
	if err := s.repo.saveToken(user.ID, token, TokenTypeReset, expiresAt); err != nil {
		return ErrInternalError
	}

	s.emailService.QueueEmail(user.Email, emailService.ResetPasswordData{
		UserName: user.Login,
		Link:     fmt.Sprintf("https://%s/api/users/reset-password?token=%s", host, token),
	})
	return nil
}

func (s *service) ResetPassword(token, newPassword string) error {
	userID, expiresAt, err := s.repo.getToken(token, TokenTypeReset)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return ErrInternalError
	}

	if time.Now().UTC().After(expiresAt) {
		return ErrTokenExpired
	}

	newPasswordHash, err := hashPassword(newPassword)
	if err != nil {
		return ErrInternalError
	}

	if err := s.repo.updatePassword(userID, newPasswordHash); err != nil {
		return ErrInternalError
	}
	_ = s.repo.deleteToken(userID, TokenTypeReset)
	return nil
}

func (s *service) GetAll() ([]User, error) {
	return s.repo.listUsers()
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	return s.repo.getUserByLoginOrEmail(loginOrEmail)
}

func (s *service) Update(userID, login string) (*User, error) {
	user, err := s.repo.getUserByID(userID)
	if err != nil {
		return nil, err
	}

	if login != "" {
		if len(login) > maxLoginLength || len(login) < minLoginLength {
			return nil, ErrLoginLength
		}
		user.Login = login
	}

	if err := s.repo.updateUser(user); err != nil {
		return nil, ErrInternalError
	}
	return user, nil
}

func (s *service) Delete(userID string) error {
	return s.repo.deleteUser(userID)
}

// PurgeExpiredTokens removes stale verification and reset tokens; run
// periodically from the maintenance scheduler.
func (s *service) PurgeExpiredTokens() (int64, error) {
	return s.repo.deleteExpiredTokens()
}
