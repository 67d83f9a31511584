package heavyselect

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/heavyselect/codec"
	pr "github.com/unkn0wn-root/heavyselect/provider"
)

// ConfigCache is the provider-agnostic widget configuration cache.
// Store and Load may run on unrelated goroutines and processes; consistency
// is delegated entirely to the Provider.
type ConfigCache interface {
	Enabled() bool
	Close(context.Context) error

	// Store derives a key from (token, fieldID), serializes cfg and writes
	// it under that key. A configuration the codec cannot represent fails
	// with *ConfigError before any provider write.
	Store(ctx context.Context, token Token, fieldID string, cfg Config) (key string, err error)

	// Load returns the configuration stored under key.
	// Missing, expired and corrupt entries report (zero, false, nil);
	// only provider I/O failures surface as err.
	Load(ctx context.Context, key string) (cfg Config, ok bool, err error)

	// Invalidate removes a key (best-effort).
	Invalidate(ctx context.Context, key string) error
}

// Options tune the behavior of the configuration cache.
// Only Namespace and Provider are required; others have sensible defaults.
type Options struct {
	// Required
	Namespace string // logical namespace to avoid collisions, e.g. "myapp"
	Provider  pr.Provider

	Codec      c.Codec[Config] // nil => codec.JSON[Config]{}
	Logger     Logger          // nil => NopLogger
	Hooks      Hooks           // nil => NopHooks
	DefaultTTL time.Duration   // 0 => 1h; bounds how long a rendered form stays submittable
	Disabled   bool            // default false (enabled)
}

func New(opts Options) (ConfigCache, error) {
	return newCache(opts)
}
