package heavyselect

import "testing"

func TestDeriveKeyDeterministic(t *testing.T) {
	tok := MustToken()
	k1 := DeriveKey(tok, "album:1")
	k2 := DeriveKey(tok, "album:1")
	if k1 != k2 {
		t.Fatalf("same inputs must derive the same key: %q vs %q", k1, k2)
	}
	if len(k1) != keyHexLen {
		t.Fatalf("key length: got %d want %d", len(k1), keyHexLen)
	}
}

func TestDeriveKeySensitivity(t *testing.T) {
	tok := MustToken()
	if DeriveKey(tok, "album:1") == DeriveKey(tok, "album:2") {
		t.Fatalf("different field IDs must derive different keys")
	}
	if DeriveKey(MustToken(), "album:1") == DeriveKey(MustToken(), "album:1") {
		t.Fatalf("different tokens must derive different keys")
	}
}

func TestNewToken(t *testing.T) {
	t1, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if t1.IsZero() {
		t.Fatalf("token should not be zero")
	}
	t2, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("tokens should be unique")
	}
}
