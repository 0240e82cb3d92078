package aerocache

import "time"

// Envelope is what Get returns: the item plus the bookkeeping a policy layer
// needs to judge staleness.
type Envelope[V any] struct {
	PrimaryKey string
	Item       V
	Stored     time.Time
	TTL        time.Duration
}

// ExpiresAt is Stored+TTL, or the zero time when the item never expires.
func (e *Envelope[V]) ExpiresAt() time.Time {
	if e.TTL <= 0 {
		return time.Time{}
	}
	return e.Stored.Add(e.TTL)
}

// Remaining is the TTL left at now, never negative. Items without a TTL
// report zero.
func (e *Envelope[V]) Remaining(now time.Time) time.Duration {
	if e.TTL <= 0 {
		return 0
	}
	if d := e.ExpiresAt().Sub(now); d > 0 {
		return d
	}
	return 0
}
