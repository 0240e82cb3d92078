package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unkn0wn-root/aerocache"
)

type recorder struct {
	aerocache.NopHooks
	mu     sync.Mutex
	events []string
	block  chan struct{}
}

func (r *recorder) add(s string) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.events = append(r.events, s)
	r.mu.Unlock()
}

func (r *recorder) Lookup(_, outcome string)                        { r.add("lookup:" + outcome) }
func (r *recorder) StoreFailure(op aerocache.Op, _ string, _ error) { r.add("fail:" + string(op)) }
func (r *recorder) ReadyChanged(ready bool) {
	if ready {
		r.add("ready")
	} else {
		r.add("stopped")
	}
}

func TestForwardsEvents(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 1, 16)

	h.ReadyChanged(true)
	h.Lookup("k", aerocache.OutcomeHit)
	h.StoreFailure(aerocache.OpPut, "k", errors.New("x"))
	h.Close()

	assert.Equal(t, []string{"ready", "lookup:hit", "fail:put"}, rec.events)
	assert.Zero(t, h.Dropped())
}

func TestDropsWhenFull(t *testing.T) {
	rec := &recorder{block: make(chan struct{})}
	h := New(rec, 1, 1)

	for i := 0; i < 10; i++ {
		h.Lookup("k", aerocache.OutcomeMiss)
	}
	close(rec.block)
	h.Close()

	require.NotZero(t, h.Dropped())
	assert.Less(t, len(rec.events), 10)
}

func TestAfterCloseIsDropped(t *testing.T) {
	h := New(nil, 0, 0)
	h.Close()
	h.Close()
	require.NotPanics(t, func() { h.ConnectFailure(errors.New("x")) })
	assert.Equal(t, uint64(1), h.Dropped())
}
