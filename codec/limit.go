package codec

import "fmt"

// LimitCodec wraps another codec and rejects oversized payloads before they
// reach Inner's Decode. Snapshots are small; an entry far beyond the
// expected size under a shared provider keyspace is foreign or corrupt and
// not worth parsing. Encode passes through unchanged.
type LimitCodec[V any] struct {
	// Inner is the wrapped codec. Must be set.
	Inner interface {
		Encode(V) ([]byte, error)
		Decode([]byte) (V, error)
	}
	// MaxDecode caps the incoming payload length in bytes for Decode.
	// <= 0 disables the check.
	MaxDecode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
