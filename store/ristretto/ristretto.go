package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/aerocache/internal/util"
	"github.com/unkn0wn-root/aerocache/internal/wire"
	"github.com/unkn0wn-root/aerocache/store"
)

type Store struct {
	c *rc.Cache
}

var _ store.Client = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	// Each record costs its encoded size in bytes.
}

// DefaultConfig sizes the cache for ~100k records / 64MiB.
func DefaultConfig() Config {
	return Config{NumCounters: 1e6, MaxCost: 64 << 20, BufferItems: 64}
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

// Dialer returns a store.Dialer creating a fresh in-process cache per dial.
// Hosts and credentials are ignored.
func Dialer(cfg Config) store.Dialer {
	return store.DialFunc(func(context.Context, store.Config) (store.Client, error) {
		return New(cfg)
	})
}

func (p *Store) Get(_ context.Context, key store.Key) (store.Record, error) {
	v, ok := p.c.Get(util.FlatKey(key))
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	b, _ := v.([]byte)
	if b == nil {
		p.c.Del(util.FlatKey(key))
		return store.Record{}, store.NewError(store.BadRecord, key.String(), nil)
	}
	rec, err := wire.DecodeRecord(b)
	if err != nil {
		return store.Record{}, store.NewError(store.BadRecord, key.String(), err)
	}
	return rec, nil
}

// Put honours policy.Exists with a lookup before the write; the check and
// the write are not atomic.
func (p *Store) Put(_ context.Context, key store.Key, rec store.Record, meta store.WriteMeta, policy store.WritePolicy) error {
	b, err := wire.EncodeRecord(rec)
	if err != nil {
		return store.NewError(store.BadRecord, key.String(), err)
	}
	k := util.FlatKey(key)

	switch policy.Exists {
	case store.Create:
		if _, ok := p.c.Get(k); ok {
			return store.NewError(store.RecordExists, key.String(), nil)
		}
	case store.Update, store.Replace:
		if _, ok := p.c.Get(k); !ok {
			return store.NewError(store.RecordNotFound, key.String(), nil)
		}
	}

	ttl := meta.TTL
	if ttl < 0 {
		ttl = 0
	}
	if !p.c.SetWithTTL(k, b, int64(len(b)), ttl) {
		return store.NewError(store.ServerError, "write rejected by admission policy", nil)
	}
	// make the write visible to the next Get
	p.c.Wait()
	return nil
}

func (p *Store) Remove(_ context.Context, key store.Key) error {
	p.c.Del(util.FlatKey(key))
	return nil
}

func (p *Store) Close() error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters when Config.Metrics is set.
func (p *Store) Metrics() *rc.Metrics { return p.c.Metrics }
