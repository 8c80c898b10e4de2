package auth

import (
	"errors"
	"log"
	"net/http"

	emailService "github.com/pfinance/WalletManager/internal/email"
	"github.com/pfinance/WalletManager/internal/user"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInternalError         = errors.New("internal server error")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserNotVerified       = errors.New("user has not been verified")
	ErrUser2FANotEnabled     = errors.New("two-factor auth is not enabled")
	ErrUser2FAAlreadyEnabled = errors.New("two-factor auth is already enabled")
	ErrInvalid2FACode        = errors.New("two-factor code is invalid")
)

type Service interface {
	Login(emailOrLogin, password string) (*user.User, string, bool, error)
	VerifyTwoFactor(sessionToken, code string) (*user.User, string, error)
	SendEmailCode(sessionToken string) error
	EnrollTwoFactor(userID string) (string, error)
	ConfirmTwoFactor(userID, code string) error
	DisableTwoFactor(userID, code string) error
	CookieAuthMiddleware(next http.Handler) http.Handler
}

type service struct {
	repo           TwoFactorRepository
	userService    user.Service
	sessionManager SessionManagerInterface
	jwtManager     JWTManagerInterface
	emailService   emailService.EmailSender
	authenticator  TwoFactorAuthenticator
}

func NewAuthService(
	repo TwoFactorRepository,
	userService user.Service,
	sessionManager SessionManagerInterface,
	jwtManager JWTManagerInterface,
	emailService emailService.EmailSender,
	authenticator TwoFactorAuthenticator,
) Service {
	return &service{
		repo:           repo,
		userService:    userService,
		sessionManager: sessionManager,
		jwtManager:     jwtManager,
		emailService:   emailService,
		authenticator:  authenticator,
	}
}

// Login checks credentials. When two-factor auth is enabled the returned
// token is an interim session token and the bool is true; the caller must
// complete VerifyTwoFactor before a signed cookie token is issued.
func (s *service) Login(emailOrLogin, password string) (*user.User, string, bool, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", false, ErrInvalidCredentials
		}
		log.Printf("error when getting user from database: %v", err)
		return nil, "", false, ErrInternalError
	}

	if !user.VerifyPassword(existingUser.PasswordHash, password) {
		return nil, "", false, ErrInvalidCredentials
	}

	if !existingUser.IsActive {
		return nil, "", false, ErrUserNotVerified
	}

	if existingUser.TwoFactorEnabled {
		sessionToken, err := s.sessionManager.GenerateSessionToken(existingUser.ID, defaultSessionTokenDuration)
		if err != nil {
			return nil, "", false, ErrInternalError
		}
		return existingUser, sessionToken, true, nil
	}

	jwtToken, err := s.jwtManager.GenerateToken(existingUser.ID, existingUser.Role, defaultJWTDuration)
	if err != nil {
		log.Printf("error during JWT generation: %v", err)
		return nil, "", false, ErrInternalError
	}

	return existingUser, jwtToken, false, nil
}

func (s *service) VerifyTwoFactor(sessionToken, code string) (*user.User, string, error) {
	userID, err := s.sessionManager.VerifySessionToken(sessionToken)
	if err != nil {
		return nil, "", err
	}

	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", ErrInternalError
	}

	if !existingUser.TwoFactorEnabled {
		return nil, "", ErrUser2FANotEnabled
	}

	secret, err := s.repo.GetTwoFactorSecret(userID)
	if err != nil {
		return nil, "", err
	}

	if !s.authenticator.VerifyCode(secret, code) {
		return nil, "", ErrInvalid2FACode
	}

	s.sessionManager.DeleteSessionToken(sessionToken)

	jwtToken, err := s.jwtManager.GenerateToken(existingUser.ID, existingUser.Role, defaultJWTDuration)
	if err != nil {
		return nil, "", ErrInternalError
	}

	return existingUser, jwtToken, nil
}

// SendEmailCode emails the current code for the account tied to an interim
// session token. Fallback for users without their authenticator app at hand;
// the session token stays valid so VerifyTwoFactor can follow.
func (s *service) SendEmailCode(sessionToken string) error {
	userID, err := s.sessionManager.VerifySessionToken(sessionToken)
	if err != nil {
		return err
	}

	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	secret, err := s.repo.GetTwoFactorSecret(userID)
	if err != nil {
		return err
	}

	code, err := s.authenticator.GenerateCode(secret)
	if err != nil {
		return ErrInternalError
	}

	s.emailService.QueueEmail(existingUser.Email, emailService.TwoFactorCodeData{
		UserName: existingUser.Login,
		Code:     code,
	})
	return nil
}

// EnrollTwoFactor stores a fresh secret and returns the otpauth URI for the
// authenticator app. Enrollment is pending until ConfirmTwoFactor proves the
// user can produce a valid code.
func (s *service) EnrollTwoFactor(userID string) (string, error) {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternalError
	}

	if existingUser.TwoFactorEnabled {
		return "", ErrUser2FAAlreadyEnabled
	}

	otpURI, secret, err := s.authenticator.GenerateSecret(existingUser.Email)
	if err != nil {
		return "", ErrInternalError
	}
	if err := s.repo.SaveTwoFactorSecret(userID, secret); err != nil {
		return "", ErrInternalError
	}

	return otpURI, nil
}

func (s *service) ConfirmTwoFactor(userID, code string) error {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if existingUser.TwoFactorEnabled {
		return ErrUser2FAAlreadyEnabled
	}

	secret, err := s.repo.GetTwoFactorSecret(userID)
	if err != nil {
		return err
	}

	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.EnableTwoFactor(userID); err != nil {
		return ErrInternalError
	}
	return nil
}

func (s *service) DisableTwoFactor(userID, code string) error {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if !existingUser.TwoFactorEnabled {
		return ErrUser2FANotEnabled
	}

	secret, err := s.repo.GetTwoFactorSecret(userID)
	if err != nil {
		return err
	}

	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.DisableTwoFactor(userID); err != nil {
		return ErrInternalError
	}
	return nil
}
