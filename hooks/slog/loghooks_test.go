package sloghook

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unkn0wn-root/aerocache"
)

func newBuf() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRedactsKeys(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{})

	h.StoreFailure(aerocache.OpGet, "test/test/secret-user", errors.New("timeout"))

	out := buf.String()
	assert.Contains(t, out, "aerocache.store_failure")
	assert.Contains(t, out, "op=get")
	assert.NotContains(t, out, "secret-user")
}

func TestCustomRedact(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{Redact: func(k string) string { return "k:" + k }})

	h.CorruptEnvelope("ns/set/id", aerocache.ReasonItemDecode)
	assert.Contains(t, buf.String(), "key=k:ns/set/id")
	assert.Contains(t, buf.String(), "reason=item_decode")
}

func TestSampling(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{LookupEvery: 10})

	for i := 0; i < 100; i++ {
		h.Lookup("k", aerocache.OutcomeHit)
	}
	assert.Equal(t, 10, strings.Count(buf.String(), "aerocache.lookup"))
}

func TestNilLogger(t *testing.T) {
	h := New(nil, Options{})
	assert.NotPanics(t, func() {
		h.ConnectFailure(errors.New("x"))
		h.ReadyChanged(true)
	})
}
