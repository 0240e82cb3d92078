// Package store defines the native client contract used by aerocache.
//
// A driver wraps one vendor client (Aerospike, Redis, an in-process cache)
// and speaks in native keys and envelope records. Drivers do not interpret
// the record beyond what is needed to persist it: expiry of the envelope is
// decided by the caller, the TTL in WriteMeta only lets the backend reclaim
// the record.
package store

import (
	"context"
	"fmt"
	"time"
)

// Key is the native key of a record: namespace (Aerospike namespace,
// partition), set (segment) and user id.
type Key struct {
	Namespace string
	Set       string
	ID        string
}

func (k Key) String() string { return k.Namespace + "/" + k.Set + "/" + k.ID }

// Record is the persisted envelope.
// Stored is unix milliseconds, TTL is milliseconds.
type Record struct {
	PrimaryKey string
	Item       []byte
	Stored     int64
	TTL        int64
}

// WriteMeta travels next to the record on Put.
type WriteMeta struct {
	// TTL lets the backend expire the record; <= 0 means no expiry.
	TTL        time.Duration
	Generation uint32
}

// ExistsAction selects write semantics when the record already exists.
type ExistsAction int

const (
	// CreateOrReplace overwrites unconditionally (default).
	CreateOrReplace ExistsAction = iota
	// Update writes only if the record exists.
	Update
	// Create writes only if the record does not exist.
	Create
	// Replace is Update with all previous content discarded.
	Replace
)

func (a ExistsAction) String() string {
	switch a {
	case CreateOrReplace:
		return "create_or_replace"
	case Update:
		return "update"
	case Create:
		return "create"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("exists_action(%d)", int(a))
	}
}

type WritePolicy struct {
	Exists ExistsAction
}

// Host is one seed endpoint of the backend.
type Host struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	Port int    `mapstructure:"port" yaml:"port"`
}

func (h Host) String() string { return fmt.Sprintf("%s:%d", h.Addr, h.Port) }

// Config is what a Dialer needs to reach the backend.
type Config struct {
	Hosts    []Host
	Timeout  time.Duration
	User     string
	Password string
}

// Client is a connected handle to a backend.
// Implementations must be safe for concurrent use.
type Client interface {
	// Get returns the record, or an *Error with Code RecordNotFound on miss.
	Get(ctx context.Context, key Key) (Record, error)

	// Put stores rec under key.
	Put(ctx context.Context, key Key, rec Record, meta WriteMeta, policy WritePolicy) error

	// Remove deletes the record. A missing record is not an error.
	Remove(ctx context.Context, key Key) error

	// Close releases the handle.
	Close() error
}

// Dialer establishes a Client.
type Dialer interface {
	Dial(ctx context.Context, cfg Config) (Client, error)
}

// DialFunc adapts a function to Dialer.
type DialFunc func(ctx context.Context, cfg Config) (Client, error)

func (f DialFunc) Dial(ctx context.Context, cfg Config) (Client, error) { return f(ctx, cfg) }
