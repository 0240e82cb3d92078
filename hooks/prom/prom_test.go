package promhook

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/aerocache"
)

func TestCounters(t *testing.T) {
	h, err := New(DefaultConfig())
	require.NoError(t, err)

	h.Lookup("k", aerocache.OutcomeHit)
	h.Lookup("k", aerocache.OutcomeHit)
	h.Lookup("k", aerocache.OutcomeMiss)
	h.CorruptEnvelope("k", aerocache.ReasonItemDecode)
	h.StoreFailure(aerocache.OpPut, "k", errors.New("x"))
	h.ConnectFailure(errors.New("refused"))

	assert.Equal(t, 2.0, testutil.ToFloat64(h.lookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.lookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.corrupt.WithLabelValues("item_decode")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.storeFailures.WithLabelValues("put")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.connectFailure))
}

func TestReadyGauge(t *testing.T) {
	h, err := New(DefaultConfig())
	require.NoError(t, err)

	h.ReadyChanged(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.ready))
	h.ReadyChanged(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(h.ready))
}

func TestRegistryNames(t *testing.T) {
	h, err := New(DefaultConfig())
	require.NoError(t, err)
	h.Lookup("k", aerocache.OutcomeHit)

	mfs, err := h.Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["aerocache_connection_lookups_total"])
	assert.True(t, names["aerocache_connection_ready"])
	assert.True(t, names["aerocache_connection_connect_failures_total"])
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	_, err := New(DefaultConfig())
	require.NoError(t, err)
	_, err = New(DefaultConfig())
	require.NoError(t, err)
}
