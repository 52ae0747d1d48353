// Package password hashes and verifies account credentials.
//
// New hashes are bcrypt strings, which carry their own algorithm tag, cost
// and salt. Verify also accepts the werkzeug PBKDF2 format
// ("pbkdf2:sha256:600000$salt$hexdigest") so accounts imported from the
// earlier Flask deployment can still sign in.
package password

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Cost is the bcrypt work factor used for new hashes.
const Cost = bcrypt.DefaultCost

const (
	// werkzeugDefaultIterations applies when a pbkdf2 method string omits
	// the iteration count.
	werkzeugDefaultIterations = 600_000
	maxIterations             = 10_000_000
)

// ErrEmptyPassword is returned by Hash for an empty plaintext.
var ErrEmptyPassword = errors.New("password is empty")

// Hash returns a salted bcrypt hash of plaintext.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash. Unknown or
// malformed hashes never match.
func Verify(plaintext, stored string) bool {
	switch {
	case strings.HasPrefix(stored, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	case strings.HasPrefix(stored, "pbkdf2:"):
		return verifyPBKDF2(plaintext, stored)
	default:
		return false
	}
}

// verifyPBKDF2 checks a werkzeug-style "pbkdf2:<hash>[:<iterations>]$salt$hex" string.
func verifyPBKDF2(plaintext, stored string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 || parts[1] == "" {
		return false
	}
	method, salt, digest := parts[0], parts[1], parts[2]

	args := strings.Split(method, ":")
	if len(args) < 2 || len(args) > 3 {
		return false
	}
	newHash := hashFunc(args[1])
	if newHash == nil {
		return false
	}
	iterations := werkzeugDefaultIterations
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 || n > maxIterations {
			return false
		}
		iterations = n
	}

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, newHash().Size(), newHash)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func hashFunc(name string) func() hash.Hash {
	switch name {
	case "sha256":
		return sha256.New
	case "sha512":
		return sha512.New
	case "sha1":
		return sha1.New
	}
	return nil
}
