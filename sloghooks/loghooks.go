package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/heavyselect"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	LoadMissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	loadMissCtr atomic.Uint64
}

var _ heavyselect.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ConfigStored(fieldID string) {
	if h.l == nil {
		return
	}
	h.l.Debug("heavyselect.config_stored",
		"field_id", fieldID)
}

func (h *Hooks) ConfigEncodeError(fieldID string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("heavyselect.config_encode_error",
		"field_id", fieldID,
		"err", err)
}

func (h *Hooks) LoadMiss(key string) {
	if h.l == nil || !sample(h.opts.LoadMissEvery, &h.loadMissCtr) {
		return
	}
	h.l.Debug("heavyselect.load_miss",
		"key", h.redact(key))
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("heavyselect.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("heavyselect.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) ProviderError(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("heavyselect.provider_error",
		"op", op,
		"err", err)
}
