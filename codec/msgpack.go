package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes snapshots with vmihailenco/msgpack/v5. Compact and
// fast; note that msgpack reads `msgpack:"..."` struct tags, not the JSON
// ones, so custom field names need their own tags. The zero value is ready
// to use.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
