// Package providertest runs the Provider contract against an implementation.
// Provider tests and the cache's own fixture share one definition of what a
// byte store must do.
package providertest

import (
	"bytes"
	"context"
	"testing"
	"time"

	pr "github.com/unkn0wn-root/heavyselect/provider"
)

// Run exercises the core contract: byte-for-byte transparency, miss shape,
// overwrite and delete. TTL behavior is provider-specific; use RunTTL for
// providers that honor the per-entry TTL.
func Run(t *testing.T, p pr.Provider) {
	t.Helper()
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		b, ok, err := p.Get(ctx, "providertest:absent")
		if err != nil {
			t.Fatalf("Get on absent key: %v", err)
		}
		if ok || b != nil {
			t.Fatalf("absent key must miss: ok=%v b=%v", ok, b)
		}
	})

	t.Run("transparency", func(t *testing.T) {
		// arbitrary bytes incl. NUL and high bit; providers must not touch them
		val := []byte{0x00, 0x01, 0xfe, 0xff, 'H', 'S', 'E', 'L'}
		ok, err := p.Set(ctx, "providertest:bytes", val, int64(len(val)), time.Minute)
		if err != nil {
			t.Fatalf("Set: %v", err)
		}
		if !ok {
			t.Skip("provider rejected the write under pressure")
		}
		got, ok, err := p.Get(ctx, "providertest:bytes")
		if err != nil || !ok {
			t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, val) {
			t.Fatalf("bytes mangled: got %x want %x", got, val)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		key := "providertest:overwrite"
		if _, err := p.Set(ctx, key, []byte("old"), 3, time.Minute); err != nil {
			t.Fatalf("Set old: %v", err)
		}
		if _, err := p.Set(ctx, key, []byte("new"), 3, time.Minute); err != nil {
			t.Fatalf("Set new: %v", err)
		}
		got, ok, err := p.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Get: ok=%v err=%v", ok, err)
		}
		if string(got) != "new" {
			t.Fatalf("overwrite lost: %q", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		key := "providertest:delete"
		if _, err := p.Set(ctx, key, []byte("x"), 1, time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := p.Del(ctx, key); err != nil {
			t.Fatalf("Del: %v", err)
		}
		if _, ok, err := p.Get(ctx, key); ok || err != nil {
			t.Fatalf("deleted key must miss: ok=%v err=%v", ok, err)
		}
	})
}

// RunTTL verifies per-entry expiry for providers that support it.
func RunTTL(t *testing.T, p pr.Provider) {
	t.Helper()
	ctx := context.Background()

	key := "providertest:ttl"
	ok, err := p.Set(ctx, key, []byte("x"), 1, 5*time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok, err := p.Get(ctx, key); ok || err != nil {
		t.Fatalf("expired entry must miss: ok=%v err=%v", ok, err)
	}
}
