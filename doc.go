// Package aerocache is a cache backend that keeps items in a key-value store
// reached through a vendor client (Aerospike by default, Redis or an
// in-process cache via the other drivers under store/).
//
// Every item is persisted inside an envelope:
//
//	PK     - the item id
//	item   - the value, serialized by Codec[V]
//	stored - write time, unix ms
//	ttl    - lifetime, ms
//
// Get returns the envelope so a policy layer can compare stored+ttl with its
// own clock. Records past stored+ttl are reported as misses by the adapter
// itself, whatever the backend's expiry granularity.
//
// Keys:
//
//	StringKey("id")                               -> <partition>/<segment>/id
//	StructuredKey{Namespace: "ns", ID: "id"}      -> ns/<segment>/id
//	StructuredKey{Namespace: "ns", Segment: "s", ID: "id"}
//
// Lifecycle:
//
//	conn, _ := aerocache.New[User](aerocache.Options[User]{Dialer: aerospike.Dialer})
//	if err := conn.Start(ctx); err != nil { ... }
//	defer conn.Stop()
package aerocache
