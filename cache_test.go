package heavyselect

import (
	"context"
	"errors"
	"testing"
	"time"

	c "github.com/unkn0wn-root/heavyselect/codec"
	"github.com/unkn0wn-root/heavyselect/internal/wire"
	pr "github.com/unkn0wn-root/heavyselect/provider"
	"github.com/unkn0wn-root/heavyselect/provider/providertest"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	m map[string]memEntry
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.m[key] = memEntry{v: value, exp: exp}
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error { delete(p.m, key); return nil }
func (p *memProvider) Close(_ context.Context) error           { return nil }

func testConfig() Config {
	return Config{
		Source:       "albums",
		Query:        Query{Collection: "albums", TextField: "title"},
		SearchFields: []string{"title"},
		MaxResults:   20,
	}
}

func newTestCache(t *testing.T, mp pr.Provider, optsOpt func(*Options)) ConfigCache {
	t.Helper()
	opts := Options{
		Namespace: "testapp",
		Provider:  mp,
	}
	if optsOpt != nil {
		optsOpt(&opts)
	}
	cc, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cc
}

func mustImpl(t *testing.T, c ConfigCache) *cache {
	t.Helper()
	impl, ok := c.(*cache)
	if !ok {
		t.Fatalf("unexpected concrete type for ConfigCache")
	}
	return impl
}

// TestStoreLoadRoundTrip verifies that a stored snapshot reads back with the
// same search fields and result limit.
func TestStoreLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	cc := newTestCache(t, mp, nil)
	defer cc.Close(ctx)

	tok := MustToken()
	key, err := cc.Store(ctx, tok, "album:1", testConfig())
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("key length: got %d want 32", len(key))
	}

	got, ok, err := cc.Load(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Load after store: ok=%v err=%v", ok, err)
	}
	if got.Source != "albums" || got.MaxResults != 20 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if len(got.SearchFields) != 1 || got.SearchFields[0] != "title" {
		t.Fatalf("search fields mismatch: %v", got.SearchFields)
	}
}

// TestStoreLoadWithCBORCodec: the cache works unchanged over a non-default
// codec; the wire envelope never inspects the payload.
func TestStoreLoadWithCBORCodec(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, newMemProvider(), func(o *Options) {
		o.Codec = c.MustCBOR[Config](true)
	})
	defer cc.Close(ctx)

	key, err := cc.Store(ctx, MustToken(), "album:1", testConfig())
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, ok, err := cc.Load(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got.Source != "albums" || got.MaxResults != 20 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

// TestNoKeyLeakBetweenInstances: two widgets with identical configuration
// must never derive the same key.
func TestNoKeyLeakBetweenInstances(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, newMemProvider(), nil)
	defer cc.Close(ctx)

	cfg := testConfig()
	k1, err := cc.Store(ctx, MustToken(), "album:1", cfg)
	if err != nil {
		t.Fatalf("Store #1: %v", err)
	}
	k2, err := cc.Store(ctx, MustToken(), "album:1", cfg)
	if err != nil {
		t.Fatalf("Store #2: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("identically configured instances share key %q", k1)
	}
}

// TestKeyRotatesAcrossRenders: the same widget instance derives a fresh key
// on every render (field ID carries the render nonce).
func TestKeyRotatesAcrossRenders(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, newMemProvider(), nil)
	defer cc.Close(ctx)

	tok := MustToken()
	k1, err := cc.Store(ctx, tok, "album:1", testConfig())
	if err != nil {
		t.Fatalf("Store render #1: %v", err)
	}
	k2, err := cc.Store(ctx, tok, "album:2", testConfig())
	if err != nil {
		t.Fatalf("Store render #2: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("successive renders share key %q", k1)
	}

	// the earlier render's entry stays readable until it expires
	if _, ok, _ := cc.Load(ctx, k1); !ok {
		t.Fatalf("first render's entry should still load")
	}
}

// TestStoreUnserializableConfig: a snapshot the codec cannot represent fails
// loudly and writes nothing.
func TestStoreUnserializableConfig(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	cc := newTestCache(t, mp, nil)
	defer cc.Close(ctx)

	cfg := testConfig()
	cfg.Filter = map[string]any{"fn": func() {}} // live object; json cannot encode

	_, err := cc.Store(ctx, MustToken(), "album:1", cfg)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.EncodeErr == nil {
		t.Fatalf("ConfigError should carry the encode error")
	}
	if len(mp.m) != 0 {
		t.Fatalf("failed store must not write: %d entries", len(mp.m))
	}
}

// TestStoreInvalidConfig: structural problems are fatal before encoding.
func TestStoreInvalidConfig(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, newMemProvider(), nil)
	defer cc.Close(ctx)

	var cfgErr *ConfigError

	noSource := testConfig()
	noSource.Source = ""
	if _, err := cc.Store(ctx, MustToken(), "album:1", noSource); !errors.As(err, &cfgErr) {
		t.Fatalf("config without source: got %v", err)
	}

	noFields := testConfig()
	noFields.SearchFields = nil
	if _, err := cc.Store(ctx, MustToken(), "album:1", noFields); !errors.As(err, &cfgErr) {
		t.Fatalf("config without search fields: got %v", err)
	}

	if _, err := cc.Store(ctx, MustToken(), "", testConfig()); !errors.As(err, &cfgErr) {
		t.Fatalf("empty field id: got %v", err)
	}

	if _, err := cc.Store(ctx, Token{}, "album:1", testConfig()); !errors.As(err, &cfgErr) {
		t.Fatalf("zero token: got %v", err)
	}
}

// TestLoadAbsentKey: a missing or expired key is a miss, never an error.
func TestLoadAbsentKey(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, newMemProvider(), nil)
	defer cc.Close(ctx)

	if _, ok, err := cc.Load(ctx, "no-such-key"); ok || err != nil {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}
	if _, ok, err := cc.Load(ctx, ""); ok || err != nil {
		t.Fatalf("empty key: ok=%v err=%v", ok, err)
	}
}

// TestSelfHealOnCorrupt ensures corrupt provider bytes are deleted and
// missed, and that an entry bound to a different key is rejected and removed.
func TestSelfHealOnCorrupt(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	cc := newTestCache(t, mp, nil)
	defer cc.Close(ctx)

	impl := mustImpl(t, cc)
	key := DeriveKey(MustToken(), "album:1")
	storageKey := impl.storageKey(key)

	// Inject corrupt bytes directly into the provider.
	if ok, err := mp.Set(ctx, storageKey, []byte("not-wire-format"), 1, time.Minute); err != nil || !ok {
		t.Fatalf("inject corrupt: ok=%v err=%v", ok, err)
	}
	if _, ok, err := cc.Load(ctx, key); err != nil || ok {
		t.Fatalf("Load on corrupt should miss, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := mp.Get(ctx, storageKey); ok {
		t.Fatalf("corrupt entry was not deleted by self-heal")
	}

	// Now inject a valid envelope bound to a foreign key.
	payload, err := c.JSON[Config]{}.Encode(testConfig())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	foreign := wire.EncodeConfig("someone-elses-key", "album:1", payload)
	if ok, err := mp.Set(ctx, storageKey, foreign, 1, time.Minute); err != nil || !ok {
		t.Fatalf("inject foreign: ok=%v err=%v", ok, err)
	}
	if _, ok, err := cc.Load(ctx, key); err != nil || ok {
		t.Fatalf("Load on foreign entry should miss, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := mp.Get(ctx, storageKey); ok {
		t.Fatalf("foreign entry was not deleted by self-heal")
	}
}

// TestInvalidate removes the entry so later loads miss.
func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	cc := newTestCache(t, newMemProvider(), nil)
	defer cc.Close(ctx)

	key, err := cc.Store(ctx, MustToken(), "album:1", testConfig())
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := cc.Invalidate(ctx, key); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, _ := cc.Load(ctx, key); ok {
		t.Fatalf("Load after invalidate should miss")
	}
}

// TestDisabled: a disabled cache still derives keys so rendering stays
// uniform, but never stores and always misses.
func TestDisabled(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	cc := newTestCache(t, mp, func(o *Options) { o.Disabled = true })
	defer cc.Close(ctx)

	if cc.Enabled() {
		t.Fatalf("cache should report disabled")
	}
	key, err := cc.Store(ctx, MustToken(), "album:1", testConfig())
	if err != nil {
		t.Fatalf("Store on disabled cache: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("disabled cache should still derive a key")
	}
	if len(mp.m) != 0 {
		t.Fatalf("disabled cache must not write")
	}
	if _, ok, _ := cc.Load(ctx, key); ok {
		t.Fatalf("disabled cache must miss")
	}
}

// TestTTLExpiry: entries honor the configured TTL.
func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	cc := newTestCache(t, mp, func(o *Options) { o.DefaultTTL = time.Millisecond })
	defer cc.Close(ctx)

	key, err := cc.Store(ctx, MustToken(), "album:1", testConfig())
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, err := cc.Load(ctx, key); ok || err != nil {
		t.Fatalf("expired entry: ok=%v err=%v", ok, err)
	}
}

// TestMemProviderContract keeps the test fixture honest against the same
// contract real providers are held to.
func TestMemProviderContract(t *testing.T) {
	mp := newMemProvider()
	providertest.Run(t, mp)
	providertest.RunTTL(t, mp)
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{Provider: newMemProvider()}); err == nil {
		t.Fatalf("missing namespace should fail")
	}
	if _, err := New(Options{Namespace: "x"}); err == nil {
		t.Fatalf("missing provider should fail")
	}
}
