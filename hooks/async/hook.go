// usage:
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{
//	    LookupEvery: 100, // sample lookups: ~every 100th
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	conn, _ := aerocache.New[User](aerocache.Options[User]{
//	    Dialer: aerospike.Dialer,
//	    Hooks:  hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/aerocache"
)

// Hooks forwards events to inner on a bounded queue. Events are dropped when
// the queue is full or after Close.
type Hooks struct {
	inner aerocache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ aerocache.Hooks = (*Hooks)(nil)

func New(inner aerocache.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = aerocache.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events did not fit in the queue.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) Lookup(k, outcome string)         { h.try(func() { h.inner.Lookup(k, outcome) }) }
func (h *Hooks) CorruptEnvelope(k, reason string) { h.try(func() { h.inner.CorruptEnvelope(k, reason) }) }
func (h *Hooks) ConnectFailure(err error)         { h.try(func() { h.inner.ConnectFailure(err) }) }
func (h *Hooks) ReadyChanged(ready bool)          { h.try(func() { h.inner.ReadyChanged(ready) }) }
func (h *Hooks) StoreFailure(op aerocache.Op, k string, err error) {
	h.try(func() { h.inner.StoreFailure(op, k, err) })
}
