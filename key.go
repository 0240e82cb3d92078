package aerocache

import "github.com/unkn0wn-root/aerocache/store"

// Key identifies a cache item. It is one of StringKey or StructuredKey.
type Key interface {
	cacheKey()
}

// StringKey is a bare id resolved against the configured partition and
// segment.
type StringKey string

// StructuredKey names the item explicitly. Empty Namespace/Segment fall back
// to the configured defaults; ID is required.
type StructuredKey struct {
	Namespace string
	Segment   string
	ID        string
}

func (StringKey) cacheKey()     {}
func (StructuredKey) cacheKey() {}

// resolveKey maps a cache key onto the store's native key.
func resolveKey(cfg Config, k Key) (store.Key, error) {
	switch k := k.(type) {
	case StringKey:
		if k == "" {
			return store.Key{}, ErrInvalidKey
		}
		return store.Key{Namespace: cfg.Partition, Set: cfg.Segment, ID: string(k)}, nil
	case StructuredKey:
		if k.ID == "" {
			return store.Key{}, ErrInvalidKey
		}
		return store.Key{
			Namespace: coalesce(k.Namespace, cfg.Partition),
			Set:       coalesce(k.Segment, cfg.Segment),
			ID:        k.ID,
		}, nil
	case *StructuredKey:
		if k == nil {
			return store.Key{}, ErrInvalidKey
		}
		return resolveKey(cfg, *k)
	default:
		return store.Key{}, ErrInvalidKey
	}
}
