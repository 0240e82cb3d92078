package aerocache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	c "github.com/unkn0wn-root/aerocache/codec"
	"github.com/unkn0wn-root/aerocache/internal/wire"
	"github.com/unkn0wn-root/aerocache/store"
)

// generation is written with every record; the adapter never reads it back.
const generation = 1

type connection[V any] struct {
	cfg    Config
	dialer store.Dialer
	codec  c.Codec[V]
	log    Logger
	hooks  Hooks
	now    func() time.Time

	mu     sync.RWMutex
	client store.Client // nil while stopped
	ready  bool

	starts singleflight.Group
}

func newConnection[V any](opts Options[V]) (*connection[V], error) {
	if opts.Dialer == nil {
		return nil, errors.New("aerocache: dialer is required")
	}

	cn := &connection[V]{
		cfg:    MergeConfig(DefaultConfig(), opts.Config),
		dialer: opts.Dialer,
		now:    time.Now,
	}
	if len(cn.cfg.Hosts) == 0 {
		return nil, errors.New("aerocache: at least one host is required")
	}

	cn.log = coalesce[Logger](opts.Logger, NopLogger{})
	cn.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cn.codec = coalesce[c.Codec[V]](opts.Codec, c.JSON[V]{})
	return cn, nil
}

// Start dials the store unless a handle is already held. Concurrent callers
// share one in-flight dial; a caller whose ctx ends stops waiting but does not
// cancel the shared dial.
func (cn *connection[V]) Start(ctx context.Context) error {
	if cn.IsReady() {
		return nil
	}
	ch := cn.starts.DoChan("start", func() (any, error) {
		return nil, cn.dial(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (cn *connection[V]) dial(ctx context.Context) error {
	if cn.IsReady() {
		return nil
	}
	client, err := cn.dialer.Dial(ctx, cn.cfg.storeConfig())
	if err != nil {
		cn.hooks.ConnectFailure(err)
		cn.log.Error("connect failed", Fields{"hosts": cn.hostList(), "err": err})
		return &ConnectError{Err: err}
	}

	cn.mu.Lock()
	cn.client = client
	cn.ready = true
	cn.mu.Unlock()

	cn.hooks.ReadyChanged(true)
	cn.log.Info("connection started", Fields{"hosts": cn.hostList()})
	return nil
}

// Stop closes and drops the handle. Close errors are logged only.
func (cn *connection[V]) Stop() {
	cn.mu.Lock()
	client := cn.client
	cn.client = nil
	cn.ready = false
	cn.mu.Unlock()

	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		cn.log.Warn("close failed", Fields{"err": err})
	}
	cn.hooks.ReadyChanged(false)
	cn.log.Info("connection stopped", nil)
}

func (cn *connection[V]) IsReady() bool {
	cn.mu.RLock()
	defer cn.mu.RUnlock()
	return cn.client != nil && cn.ready
}

func (cn *connection[V]) ValidateSegmentName(name string) error {
	if name == "" {
		return ErrEmptySegment
	}
	if strings.IndexByte(name, 0) >= 0 {
		return ErrSegmentNullByte
	}
	return nil
}

func (cn *connection[V]) GenerateKey(key Key) (store.Key, error) {
	return resolveKey(cn.cfg, key)
}

// Get returns (nil, nil) on a miss and on an expired record.
func (cn *connection[V]) Get(ctx context.Context, key Key) (*Envelope[V], error) {
	client, err := cn.handle()
	if err != nil {
		return nil, err
	}
	nk, err := resolveKey(cn.cfg, key)
	if err != nil {
		return nil, err
	}
	sk := nk.String()

	rec, err := client.Get(ctx, nk)
	switch {
	case err == nil:
	case store.IsNotFound(err):
		cn.hooks.Lookup(sk, OutcomeMiss)
		return nil, nil
	case store.IsBadRecord(err):
		cn.hooks.CorruptEnvelope(sk, ReasonBadRecord)
		return nil, badEnvelope(ReasonBadRecord, err)
	default:
		cn.hooks.StoreFailure(OpGet, sk, err)
		cn.log.Warn("get failed", Fields{"key": sk, "err": err})
		return nil, &StoreError{Op: OpGet, Key: sk, Err: err}
	}

	if len(rec.Item) == 0 {
		cn.hooks.CorruptEnvelope(sk, ReasonMissingItem)
		return nil, badEnvelope(ReasonMissingItem, nil)
	}
	if rec.Stored <= 0 {
		cn.hooks.CorruptEnvelope(sk, ReasonMissingStored)
		return nil, badEnvelope(ReasonMissingStored, nil)
	}
	if wire.Expired(rec, cn.now().UnixMilli()) {
		cn.hooks.Lookup(sk, OutcomeExpired)
		return nil, nil
	}

	item, err := cn.codec.Decode(rec.Item)
	if err != nil {
		cn.hooks.CorruptEnvelope(sk, ReasonItemDecode)
		return nil, badEnvelope(ReasonItemDecode, err)
	}

	cn.hooks.Lookup(sk, OutcomeHit)
	return &Envelope[V]{
		PrimaryKey: rec.PrimaryKey,
		Item:       item,
		Stored:     time.UnixMilli(rec.Stored),
		TTL:        time.Duration(rec.TTL) * time.Millisecond,
	}, nil
}

// Set overwrites key with value. A non-positive ttl stores nothing.
// Codec errors are returned unchanged and nothing is written.
func (cn *connection[V]) Set(ctx context.Context, key Key, value V, ttl time.Duration) error {
	client, err := cn.handle()
	if err != nil {
		return err
	}
	if ttl <= 0 {
		cn.log.Debug("set skipped (non-positive ttl)", Fields{"ttl": ttl})
		return nil
	}
	nk, err := resolveKey(cn.cfg, key)
	if err != nil {
		return err
	}
	item, err := cn.codec.Encode(value)
	if err != nil {
		return err
	}

	rec := store.Record{
		PrimaryKey: nk.ID,
		Item:       item,
		Stored:     cn.now().UnixMilli(),
		TTL:        int64((ttl + time.Millisecond - 1) / time.Millisecond),
	}
	meta := store.WriteMeta{TTL: ttl, Generation: generation}
	policy := store.WritePolicy{Exists: store.CreateOrReplace}

	if err := client.Put(ctx, nk, rec, meta, policy); err != nil {
		sk := nk.String()
		cn.hooks.StoreFailure(OpPut, sk, err)
		cn.log.Warn("put failed", Fields{"key": sk, "err": err})
		return &StoreError{Op: OpPut, Key: sk, Err: err}
	}
	return nil
}

func (cn *connection[V]) Drop(ctx context.Context, key Key) error {
	client, err := cn.handle()
	if err != nil {
		return err
	}
	nk, err := resolveKey(cn.cfg, key)
	if err != nil {
		return err
	}
	if err := client.Remove(ctx, nk); err != nil && !store.IsNotFound(err) {
		sk := nk.String()
		cn.hooks.StoreFailure(OpRemove, sk, err)
		cn.log.Warn("remove failed", Fields{"key": sk, "err": err})
		return &StoreError{Op: OpRemove, Key: sk, Err: err}
	}
	return nil
}

func (cn *connection[V]) handle() (store.Client, error) {
	cn.mu.RLock()
	defer cn.mu.RUnlock()
	if cn.client == nil || !cn.ready {
		return nil, ErrNotStarted
	}
	return cn.client, nil
}

func (cn *connection[V]) hostList() []string {
	out := make([]string, 0, len(cn.cfg.Hosts))
	for _, h := range cn.cfg.Hosts {
		out = append(out, h.String())
	}
	return out
}
