package heavyselect

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the cache calls them on
// the render and search hot paths.
type Hooks interface {
	// A configuration snapshot was stored.
	ConfigStored(fieldID string)

	// The codec rejected a configuration snapshot (fatal store failure).
	ConfigEncodeError(fieldID string, err error)

	// Load on a key with no live entry (normal after TTL expiry or restart).
	LoadMiss(key string)

	// An entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "key_mismatch", "value_decode"}
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// Provider returned an I/O error.
	// op ∈ {"get", "set", "del"}
	ProviderError(op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ConfigStored(string)            {}
func (NopHooks) ConfigEncodeError(string, error) {}
func (NopHooks) LoadMiss(string)                {}
func (NopHooks) SelfHeal(string, string)        {}
func (NopHooks) ProviderSetRejected(string)     {}
func (NopHooks) ProviderError(string, error)    {}
