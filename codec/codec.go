// Package codec serializes the item carried inside an aerocache envelope.
package codec

// Codec encodes/decodes values V to []byte for the envelope's item bin.
// Encode errors are returned to the caller of Set unchanged and nothing is
// written.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
