package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/aerocache/internal/util"
	"github.com/unkn0wn-root/aerocache/internal/wire"
	"github.com/unkn0wn-root/aerocache/store"
)

// Store keeps framed records in BigCache. BigCache has no per-entry TTL, only
// a global LifeWindow, so the record's own stored+ttl is checked on read.
type Store struct {
	c   *bc.BigCache
	now func() time.Time
}

var _ store.Client = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	if cfg.LifeWindow <= 0 {
		return nil, errors.New("bigcache: LifeWindow must be positive")
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c, now: time.Now}, nil
}

// Dialer returns a store.Dialer creating a fresh BigCache per dial.
func Dialer(cfg Config) store.Dialer {
	return store.DialFunc(func(context.Context, store.Config) (store.Client, error) {
		return New(cfg)
	})
}

func (p *Store) Get(_ context.Context, key store.Key) (store.Record, error) {
	k := util.FlatKey(key)
	b, err := p.c.Get(k)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, store.NewError(store.ServerError, key.String(), err)
	}
	rec, err := wire.DecodeRecord(b)
	if err != nil {
		return store.Record{}, store.NewError(store.BadRecord, key.String(), err)
	}
	if wire.Expired(rec, p.now().UnixMilli()) {
		_ = p.c.Delete(k)
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

// Put encodes the record and writes it. meta.TTL is not used: expiry comes
// from the record's stored+ttl.
func (p *Store) Put(_ context.Context, key store.Key, rec store.Record, _ store.WriteMeta, policy store.WritePolicy) error {
	b, err := wire.EncodeRecord(rec)
	if err != nil {
		return store.NewError(store.BadRecord, key.String(), err)
	}
	k := util.FlatKey(key)

	switch policy.Exists {
	case store.Create:
		if _, err := p.c.Get(k); err == nil {
			return store.NewError(store.RecordExists, key.String(), nil)
		}
	case store.Update, store.Replace:
		if _, err := p.c.Get(k); err != nil {
			return store.NewError(store.RecordNotFound, key.String(), nil)
		}
	}

	if err := p.c.Set(k, b); err != nil {
		return store.NewError(store.ServerError, key.String(), err)
	}
	return nil
}

func (p *Store) Remove(_ context.Context, key store.Key) error {
	err := p.c.Delete(util.FlatKey(key))
	if err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return store.NewError(store.ServerError, key.String(), err)
	}
	return nil
}

func (p *Store) Close() error {
	return p.c.Close()
}
