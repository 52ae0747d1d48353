package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a session cookie fails signature,
// expiry or claim validation.
var ErrInvalidToken = errors.New("invalid session token")

// Signer issues and verifies the HS256 tokens carried in the session cookie.
// The token names a session record (jti) and its user (sub); it holds no
// other state.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer using secret as the HMAC key.
func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

// Sign returns a token for the given session that expires after ttl.
func (s *Signer) Sign(sessionID string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the session id and user id it names.
func (s *Signer) Parse(tokenString string) (string, int64, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return "", 0, ErrInvalidToken
	}
	return claims.ID, userID, nil
}
