package auth

import (
	"log"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type TwoFactorAuthenticator interface {
	GenerateSecret(accountName string) (string, string, error)
	GenerateCode(secret string) (string, error)
	VerifyCode(secret, code string) bool
}

type Authenticator struct{}

// GenerateSecret uses SHA1 for Google Authenticator compatibility.
func (g *Authenticator) GenerateSecret(accountName string) (string, string, error) {
	secret, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "WalletManager",
		AccountName: accountName,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		log.Println("Error during totp secret generation: ", err)
		return "", "", ErrInternalError
	}

	return secret.URL(), secret.Secret(), nil
}

// GenerateCode computes the current TOTP code for a secret. Used when the
// code is delivered by email instead of read from an authenticator app.
func (g *Authenticator) GenerateCode(secret string) (string, error) {
	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		return "", ErrInternalError
	}
	return code, nil
}

func (g *Authenticator) VerifyCode(secret, code string) bool {
	return totp.Validate(code, secret)
}
