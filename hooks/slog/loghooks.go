package sloghook

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/aerocache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	LookupEvery  uint64
	CorruptEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	lookupCtr  atomic.Uint64
	corruptCtr atomic.Uint64
}

var _ aerocache.Hooks = (*Hooks)(nil)

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

func (h *Hooks) Lookup(storageKey, outcome string) {
	if h.l == nil || !sample(h.opts.LookupEvery, &h.lookupCtr) {
		return
	}
	h.l.Debug("aerocache.lookup",
		"key", h.redact(storageKey),
		"outcome", outcome)
}

func (h *Hooks) CorruptEnvelope(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Warn("aerocache.corrupt_envelope",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) StoreFailure(op aerocache.Op, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("aerocache.store_failure",
		"op", string(op),
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) ConnectFailure(err error) {
	if h.l == nil {
		return
	}
	h.l.Error("aerocache.connect_failure", "err", err)
}

func (h *Hooks) ReadyChanged(ready bool) {
	if h.l == nil {
		return
	}
	h.l.Info("aerocache.ready_changed", "ready", ready)
}
