// Package heavyselect implements the server side of a select2-style
// autocomplete widget: a per-render configuration cache that lets an AJAX
// search request reconstruct which collection to query, which attributes to
// search and how many results to return.
//
// Components:
//   - Provider: byte store with TTL (e.g. Ristretto, BigCache, Redis).
//   - Codec[V]: (de)serializes V <-> []byte; the cache uses Codec[Config].
//   - Token: 16-byte per-widget secret from crypto/rand.
//
// Keys:
//
//	key        = hex(sha256(token || fieldID))[:32]
//	storageKey = cfg:<ns>:<key>
//
// The field ID carries a render-scoped nonce, so a widget derives a fresh
// key on every render, and two widgets never share a key even when their
// configuration is identical (distinct tokens).
//
// Render/search flow:
//
//	key, _ := cache.Store(ctx, tok, fieldID, cfg) // at render
//	// key is embedded in markup as data-field_id
//	cfg, ok, _ := cache.Load(ctx, key)            // at search request
//	// ok == false => empty result set, never an error
//
// Store encodes before it writes: a configuration that cannot be represented
// structurally (a live func or channel smuggled into Filter) fails with a
// *ConfigError and leaves the cache untouched.
package heavyselect
