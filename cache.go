package heavyselect

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/heavyselect/codec"
	"github.com/unkn0wn-root/heavyselect/internal/wire"
	pr "github.com/unkn0wn-root/heavyselect/provider"
)

const defaultTTL = time.Hour

type cache struct {
	ns       string
	provider pr.Provider
	codec    c.Codec[Config]
	log      Logger
	hooks    Hooks
	enabled  bool
	ttl      time.Duration
}

func newCache(opts Options) (*cache, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("heavyselect: provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("heavyselect: namespace is required")
	}

	cc := &cache{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
		enabled:  !opts.Disabled,
	}

	// defaults
	if cc.codec == nil {
		cc.codec = c.JSON[Config]{}
	}
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cc.ttl = coalesce[time.Duration](opts.DefaultTTL, defaultTTL)

	return cc, nil
}

func (cc *cache) Enabled() bool { return cc.enabled }

func (cc *cache) Close(ctx context.Context) error {
	if cc.provider != nil {
		return cc.provider.Close(ctx)
	}
	return nil
}

func (cc *cache) Store(ctx context.Context, token Token, fieldID string, cfg Config) (string, error) {
	if token.IsZero() {
		return "", &ConfigError{FieldID: fieldID, Reason: "zero token"}
	}
	if fieldID == "" {
		return "", &ConfigError{Reason: "empty field id"}
	}
	if err := cfg.validate(); err != nil {
		return "", &ConfigError{FieldID: fieldID, Reason: err.Error()}
	}

	key := DeriveKey(token, fieldID)
	if !cc.enabled {
		// still hand out a key so rendering stays uniform; searches miss
		return key, nil
	}

	// Encode first. A snapshot the codec cannot represent would read back
	// as semantically wrong data, so this failure is fatal and nothing is
	// written.
	payload, err := cc.codec.Encode(cfg)
	if err != nil {
		cc.hooks.ConfigEncodeError(fieldID, err)
		return "", &ConfigError{FieldID: fieldID, EncodeErr: err}
	}

	k := cc.storageKey(key)
	wireb := wire.EncodeConfig(key, fieldID, payload)
	ok, err := cc.provider.Set(ctx, k, wireb, int64(len(wireb)), cc.ttl)
	if err != nil {
		cc.hooks.ProviderError("set", err)
		return "", fmt.Errorf("heavyselect: store %q: %w", fieldID, err)
	}
	if !ok {
		cc.hooks.ProviderSetRejected(k)
		cc.log.Warn("config Set rejected by provider (pressure)", Fields{"field_id": fieldID})
	}
	cc.hooks.ConfigStored(fieldID)
	cc.log.Debug("config stored", Fields{"field_id": fieldID, "key": key})
	return key, nil
}

func (cc *cache) Load(ctx context.Context, key string) (Config, bool, error) {
	var zero Config
	if !cc.enabled || key == "" {
		return zero, false, nil
	}
	k := cc.storageKey(key)
	raw, ok, err := cc.provider.Get(ctx, k)
	if err != nil {
		cc.hooks.ProviderError("get", err)
		return zero, false, err
	}
	if !ok {
		cc.hooks.LoadMiss(key)
		return zero, false, nil
	}
	boundKey, fieldID, payload, err := wire.DecodeConfig(raw)
	if err != nil {
		cc.selfHeal(ctx, k, "corrupt")
		return zero, false, nil
	}
	// a foreign write under our prefix carries the wrong bound key
	if boundKey != key {
		cc.selfHeal(ctx, k, "key_mismatch")
		return zero, false, nil
	}
	cfg, err := cc.codec.Decode(payload)
	if err != nil {
		cc.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}
	cc.log.Debug("config loaded", Fields{"field_id": fieldID, "key": key})
	return cfg, true, nil
}

func (cc *cache) Invalidate(ctx context.Context, key string) error {
	if !cc.enabled || key == "" {
		return nil
	}
	k := cc.storageKey(key)
	if err := cc.provider.Del(ctx, k); err != nil {
		cc.hooks.ProviderError("del", err)
		return err
	}
	return nil
}

func (cc *cache) selfHeal(ctx context.Context, storageKey, reason string) {
	_ = cc.provider.Del(ctx, storageKey)
	cc.hooks.SelfHeal(storageKey, reason)
	cc.log.Debug("self-healed cache entry", Fields{"key": storageKey, "reason": reason})
}

func (cc *cache) storageKey(key string) string {
	// isolate by namespace
	return "cfg:" + cc.ns + ":" + key
}
