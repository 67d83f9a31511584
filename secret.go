package heavyselect

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Token is an unguessable per-widget secret. It is generated once at widget
// construction and mixed into every derived key, which keeps keys from
// colliding across widgets even when their configuration is identical.
type Token [16]byte

// NewToken returns a Token from crypto/rand.
func NewToken() (Token, error) {
	var t Token
	if _, err := rand.Read(t[:]); err != nil {
		return Token{}, fmt.Errorf("heavyselect: token: %w", err)
	}
	return t, nil
}

// MustToken is like NewToken but panics on error. crypto/rand failing is not
// something a form render can recover from.
func MustToken() Token {
	t, err := NewToken()
	if err != nil {
		panic(err)
	}
	return t
}

// IsZero reports whether t was never initialized.
func (t Token) IsZero() bool { return t == Token{} }

// keyHexLen is the derived key length in hex characters (16 bytes of the
// sha256 sum). Long enough to be unguessable, short enough for a data attr.
const keyHexLen = 32

// DeriveKey computes the cache key for one (widget, render) pair.
// Deterministic in its inputs; unguessable without the token.
func DeriveKey(token Token, fieldID string) string {
	h := sha256.New()
	h.Write(token[:])
	h.Write([]byte(fieldID))
	return hex.EncodeToString(h.Sum(nil))[:keyHexLen]
}
