package aerocache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/aerocache/codec"
	"github.com/unkn0wn-root/aerocache/store"
)

// Conn is the cache-backend contract consumed by a cache policy layer.
// V is the item type; the item is serialized by a pluggable Codec[V].
type Conn[V any] interface {
	// Lifecycle
	Start(ctx context.Context) error
	Stop()
	IsReady() bool

	// Data
	Get(ctx context.Context, key Key) (*Envelope[V], error)
	Set(ctx context.Context, key Key, value V, ttl time.Duration) error
	Drop(ctx context.Context, key Key) error

	// Validation and key resolution, no I/O
	ValidateSegmentName(name string) error
	GenerateKey(key Key) (store.Key, error)
}

// Options configure a Conn. Only Dialer is required.
type Options[V any] struct {
	Config Config       // merged over DefaultConfig()
	Dialer store.Dialer // e.g. aerospike.Dialer, redis.Dialer

	Codec  c.Codec[V] // nil => codec.JSON[V]
	Logger Logger     // nil => NopLogger
	Hooks  Hooks      // nil => NopHooks
}

func New[V any](opts Options[V]) (Conn[V], error) {
	return newConnection[V](opts)
}
