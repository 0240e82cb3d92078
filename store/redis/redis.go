package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/aerocache/internal/util"
	"github.com/unkn0wn-root/aerocache/internal/wire"
	"github.com/unkn0wn-root/aerocache/store"
)

var ErrNilClient = errors.New("redis store: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Client = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Dial builds a client from the seed hosts and verifies it with PING.
// The returned store owns the client.
func Dial(ctx context.Context, cfg store.Config) (store.Client, error) {
	addrs := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		addrs = append(addrs, h.String())
	}
	rdb := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:       addrs,
		Username:    cfg.User,
		Password:    cfg.Password,
		DialTimeout: cfg.Timeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Redis{rdb: rdb, closeClient: true}, nil
}

// Dialer is Dial as a store.Dialer.
var Dialer store.Dialer = store.DialFunc(Dial)

func (p *Redis) Get(ctx context.Context, key store.Key) (store.Record, error) {
	b, err := p.rdb.Get(ctx, util.FlatKey(key)).Bytes()
	if err == goredis.Nil {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, classify(err)
	}
	rec, err := wire.DecodeRecord(b)
	if err != nil {
		return store.Record{}, store.NewError(store.BadRecord, key.String(), err)
	}
	return rec, nil
}

func (p *Redis) Put(ctx context.Context, key store.Key, rec store.Record, meta store.WriteMeta, policy store.WritePolicy) error {
	b, err := wire.EncodeRecord(rec)
	if err != nil {
		return store.NewError(store.BadRecord, key.String(), err)
	}
	ttl := meta.TTL
	if ttl <= 0 {
		ttl = 0 // no expiry
	}

	k := util.FlatKey(key)
	switch policy.Exists {
	case store.Create:
		ok, err := p.rdb.SetNX(ctx, k, b, ttl).Result()
		if err != nil {
			return classify(err)
		}
		if !ok {
			return store.NewError(store.RecordExists, key.String(), nil)
		}
	case store.Update, store.Replace:
		ok, err := p.rdb.SetXX(ctx, k, b, ttl).Result()
		if err != nil {
			return classify(err)
		}
		if !ok {
			return store.NewError(store.RecordNotFound, key.String(), nil)
		}
	default:
		if err := p.rdb.Set(ctx, k, b, ttl).Err(); err != nil {
			return classify(err)
		}
	}
	return nil
}

func (p *Redis) Remove(ctx context.Context, key store.Key) error {
	if err := p.rdb.Del(ctx, util.FlatKey(key)).Err(); err != nil {
		return classify(err)
	}
	return nil
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close() error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, goredis.ErrClosed):
		return store.NewError(store.ClientClosed, "", err)
	case errors.Is(err, context.DeadlineExceeded):
		return store.NewError(store.Timeout, "", err)
	default:
		return store.NewError(store.ServerError, "", err)
	}
}
