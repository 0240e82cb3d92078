package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Protobuf stores proto messages in their binary wire form. Output is
// deterministic so equal messages produce equal items.
type Protobuf[T proto.Message] struct {
	ctor           func() T // e.g. func() *pb.User { return &pb.User{} }
	DiscardUnknown bool
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{ctor: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: protobuf encode %s: %w", v.ProtoReflect().Descriptor().FullName(), err)
	}
	return b, nil
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	var zero T
	if c.ctor == nil {
		return zero, fmt.Errorf("codec: protobuf decode: no constructor, use NewProtobuf")
	}
	m := c.ctor()
	if err := (proto.UnmarshalOptions{DiscardUnknown: c.DiscardUnknown}).Unmarshal(b, m); err != nil {
		return zero, fmt.Errorf("codec: protobuf decode %s: %w", m.ProtoReflect().Descriptor().FullName(), err)
	}
	return m, nil
}
