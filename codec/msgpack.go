package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack serializes items with vmihailenco/msgpack/v5.
// The zero value is ready to use and reads `msgpack:"name"` tags. Set
// UseJSONTag to reuse existing json tags instead.
type Msgpack[V any] struct {
	UseJSONTag bool
}

func (c Msgpack[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if c.UseJSONTag {
		enc.SetCustomStructTag("json")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	if c.UseJSONTag {
		dec.SetCustomStructTag("json")
	}
	err := dec.Decode(&v)
	return v, err
}
