package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

// Tokens live as long as the session cookie that carries them.
const defaultJWTDuration = 7 * 24 * time.Hour

type JWTManagerInterface interface {
	GenerateToken(userID, role string, duration time.Duration) (string, error)
	ValidateToken(tokenString string) (string, string, error)
}

type SessionTokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret string
}

func NewJWTManager(secret string) JWTManagerInterface {
	return &JWTManager{
		secret: secret,
	}
}

func (j *JWTManager) GenerateToken(userID, role string, duration time.Duration) (string, error) {
	claims := &SessionTokenClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return "", "", ErrExpiredJWTToken
			}
		}
		return "", "", err
	}

	claims, ok := token.Claims.(*SessionTokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", "", ErrInvalidJWTToken
	}

	return claims.UserID, claims.Role, nil
}
