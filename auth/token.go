package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

const issuer = "auth"

// ErrInvalidToken covers every verification failure: bad signature, expiry and malformed input.
var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier resolves a session token to the account email it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Tokens issues and verifies HS256 session tokens under a single process-wide secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret, now: time.Now}
}

func (t *Tokens) Issue(subject string) (string, error) {
	issuedAt := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(SessionTTL)),
	})
	return token.SignedString(t.secret)
}

// Verify checks the signature before any claim, then requires now < expiresAt.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
