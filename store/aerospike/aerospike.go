// Package aerospike is the store driver backed by the official Aerospike Go
// client. Records are kept as four bins: PK, item, stored, ttl.
package aerospike

import (
	"context"
	"errors"
	"math"
	"time"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aerospike-client-go/v7/types"

	"github.com/unkn0wn-root/aerocache/store"
)

const (
	binPK     = "PK"
	binItem   = "item"
	binStored = "stored"
	binTTL    = "ttl"
)

var ErrNilClient = errors.New("aerospike store: nil client")

// nativeClient is the subset of *as.Client the driver uses.
type nativeClient interface {
	Get(policy *as.BasePolicy, key *as.Key, binNames ...string) (*as.Record, as.Error)
	Put(policy *as.WritePolicy, key *as.Key, binMap as.BinMap) as.Error
	Delete(policy *as.WritePolicy, key *as.Key) (bool, as.Error)
	Close()
}

type Store struct {
	c nativeClient
}

var _ store.Client = (*Store)(nil)

// New wraps an already connected client. Close closes it.
func New(c *as.Client) (*Store, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	return &Store{c: c}, nil
}

// Dial connects to the seed hosts. The client's own Timeout bounds the
// initial cluster tend; ctx is only checked before dialing.
func Dial(ctx context.Context, cfg store.Config) (store.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cfg.Hosts) == 0 {
		return nil, errors.New("aerospike store: no hosts configured")
	}

	policy := as.NewClientPolicy()
	if cfg.Timeout > 0 {
		policy.Timeout = cfg.Timeout
	}
	policy.User = cfg.User
	policy.Password = cfg.Password

	hosts := make([]*as.Host, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		hosts = append(hosts, as.NewHost(h.Addr, h.Port))
	}

	c, aerr := as.NewClientWithPolicyAndHost(policy, hosts...)
	if aerr != nil {
		return nil, aerr
	}
	return &Store{c: c}, nil
}

// Dialer is Dial as a store.Dialer.
var Dialer store.Dialer = store.DialFunc(Dial)

func (s *Store) Get(ctx context.Context, key store.Key) (store.Record, error) {
	k, aerr := nativeKey(key)
	if aerr != nil {
		return store.Record{}, store.NewError(store.BadRecord, key.String(), aerr)
	}
	policy := as.NewPolicy()
	applyDeadline(ctx, policy)

	r, aerr := s.c.Get(policy, k)
	if aerr != nil {
		return store.Record{}, classify(aerr, key)
	}
	return toRecord(r), nil
}

func (s *Store) Put(ctx context.Context, key store.Key, rec store.Record, meta store.WriteMeta, policy store.WritePolicy) error {
	k, aerr := nativeKey(key)
	if aerr != nil {
		return store.NewError(store.BadRecord, key.String(), aerr)
	}
	wp := as.NewWritePolicy(meta.Generation, expiration(meta.TTL))
	wp.RecordExistsAction = existsAction(policy.Exists)
	applyDeadline(ctx, &wp.BasePolicy)

	if aerr := s.c.Put(wp, k, toBins(rec)); aerr != nil {
		return classify(aerr, key)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key store.Key) error {
	k, aerr := nativeKey(key)
	if aerr != nil {
		return store.NewError(store.BadRecord, key.String(), aerr)
	}
	wp := as.NewWritePolicy(0, 0)
	applyDeadline(ctx, &wp.BasePolicy)

	// existed=false is fine: removing a missing record is not an error
	if _, aerr := s.c.Delete(wp, k); aerr != nil {
		if aerr.Matches(types.KEY_NOT_FOUND_ERROR) {
			return nil
		}
		return classify(aerr, key)
	}
	return nil
}

func (s *Store) Close() error {
	s.c.Close()
	return nil
}

func nativeKey(k store.Key) (*as.Key, as.Error) {
	return as.NewKey(k.Namespace, k.Set, k.ID)
}

// applyDeadline maps the ctx deadline onto the command's total timeout.
func applyDeadline(ctx context.Context, p *as.BasePolicy) {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			p.TotalTimeout = d
		} else {
			p.TotalTimeout = time.Millisecond
		}
	}
}

// expiration converts a TTL to Aerospike seconds, rounding up so sub-second
// TTLs are not turned into the namespace default.
func expiration(ttl time.Duration) uint32 {
	if ttl <= 0 {
		return as.TTLDontExpire
	}
	secs := (ttl + time.Second - 1) / time.Second
	// MaxUint32 and MaxUint32-1 are reserved (never expire, don't update)
	if secs > math.MaxUint32-2 {
		return math.MaxUint32 - 2
	}
	return uint32(secs)
}

func existsAction(a store.ExistsAction) as.RecordExistsAction {
	switch a {
	case store.Update:
		return as.UPDATE_ONLY
	case store.Create:
		return as.CREATE_ONLY
	case store.Replace:
		return as.REPLACE_ONLY
	default:
		return as.REPLACE // create or replace
	}
}

func toBins(rec store.Record) as.BinMap {
	return as.BinMap{
		binPK:     rec.PrimaryKey,
		binItem:   rec.Item,
		binStored: rec.Stored,
		binTTL:    rec.TTL,
	}
}

// toRecord reads the envelope bins. Missing or mistyped bins are left zero;
// the caller decides whether the envelope is usable.
func toRecord(r *as.Record) store.Record {
	if r == nil {
		return store.Record{}
	}
	var rec store.Record
	if pk, ok := r.Bins[binPK].(string); ok {
		rec.PrimaryKey = pk
	}
	switch v := r.Bins[binItem].(type) {
	case []byte:
		rec.Item = v
	case string:
		rec.Item = []byte(v)
	}
	rec.Stored = toInt64(r.Bins[binStored])
	rec.TTL = toInt64(r.Bins[binTTL])
	return rec
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	case uint32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func classify(aerr as.Error, key store.Key) error {
	switch {
	case aerr.Matches(types.KEY_NOT_FOUND_ERROR):
		return store.ErrNotFound
	case aerr.Matches(types.KEY_EXISTS_ERROR):
		return store.NewError(store.RecordExists, key.String(), aerr)
	case aerr.Matches(types.TIMEOUT):
		return store.NewError(store.Timeout, key.String(), aerr)
	default:
		return store.NewError(store.ServerError, key.String(), aerr)
	}
}
