package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto-defined snapshot types. Decode needs a concrete
// message to unmarshal into, so the codec carries a constructor.
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf builds a Protobuf codec from a message constructor, e.g.
// NewProtobuf(func() *pb.Snapshot { return &pb.Snapshot{} }).
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
