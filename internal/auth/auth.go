// Package auth verifies the shared-secret write token that gates dataset
// mutations. The expected token is configured as a bcrypt hash (preferred)
// or as plaintext; verification never reveals the expected value.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taxatlas/internal/taxerr"
)

const (
	// TokenPrefix namespaces generated write tokens
	TokenPrefix = "ta_wt_" // #nosec G101 -- prefix pattern, not a credential

	// tokenBytes is the length of the random part, hex encoded on output
	tokenBytes = 24

	// bcryptCost is the cost factor for token hashing
	bcryptCost = 12
)

// Verifier checks submitted write tokens against configured material
type Verifier struct {
	tokenHash string
	token     string
}

// NewVerifier creates a verifier. At least one of tokenHash and plaintext
// must be set for writes to be possible.
func NewVerifier(tokenHash, plaintext string) *Verifier {
	return &Verifier{tokenHash: strings.TrimSpace(tokenHash), token: strings.TrimSpace(plaintext)}
}

// Configured reports whether any write token is set up
func (v *Verifier) Configured() bool {
	return v.tokenHash != "" || v.token != ""
}

// Verify checks a submitted token. Every failure path returns an
// AuthFailed error with a message that does not echo the expected secret.
func (v *Verifier) Verify(submitted string) error {
	submitted = strings.TrimSpace(submitted)

	if !v.Configured() {
		return taxerr.Auth("writes are disabled: no token configured")
	}
	if submitted == "" {
		return taxerr.Auth("write token is required")
	}

	if v.tokenHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(v.tokenHash), []byte(submitted)) == nil {
			return nil
		}
		return taxerr.Auth("write token mismatch")
	}

	if subtle.ConstantTimeCompare([]byte(v.token), []byte(submitted)) == 1 {
		return nil
	}
	return taxerr.Auth("write token mismatch")
}

// GenerateToken creates a fresh random write token
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return TokenPrefix + hex.EncodeToString(buf), nil
}

// HashToken creates the bcrypt hash stored in config for a token
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(token)), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// MaskToken returns a display-safe version of a token
func MaskToken(token string) string {
	if len(token) <= len(TokenPrefix)+4 {
		return "****"
	}
	return token[:len(TokenPrefix)+4] + "****"
}
