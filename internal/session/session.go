// Package session provides Valkey-backed HTTP session management.
// The browser holds a signed token naming a session record; the record
// itself lives in Valkey as JSON with automatic TTL expiry, so deleting
// it logs the user out even while the token is still unexpired.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "quire_session"

	// DefaultTTL is how long a session lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"
)

// Data holds the session payload stored in Valkey. Only the user id is
// kept; the user itself is re-read from the database on every request.
type Data struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	signer *Signer
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// A non-positive ttl falls back to DefaultTTL. Set secure to true when
// serving over HTTPS so cookies carry the Secure flag.
func NewStore(client *redis.Client, secret []byte, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		signer: NewSigner(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Create starts a new session for userID, stores it in Valkey, and sets
// the session cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, userID int64) (string, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(&Data{UserID: userID, CreatedAt: time.Now()})
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	token, err := s.signer.Sign(id, userID, s.ttl)
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data for the request. Returns nil, nil when the
// request carries no cookie, a forged or expired token, or a token whose
// record is gone from Valkey.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id, userID, ok := s.sessionID(r)
	if !ok {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	// The record must belong to the user the token was issued for.
	if data.UserID != userID {
		return nil, nil
	}
	return &data, nil
}

// Destroy removes the session from Valkey and clears the cookie. It is
// safe to call when no session exists.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}

	if id, _, ok := s.sessionID(r); ok {
		if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
			return fmt.Errorf("session destroy: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	return nil
}

// sessionID extracts and verifies the session token from the request.
func (s *Store) sessionID(r *http.Request) (string, int64, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", 0, false
	}
	id, userID, err := s.signer.Parse(cookie.Value)
	if err != nil {
		return "", 0, false
	}
	return id, userID, true
}
