package codec

// Bytes is the identity codec for values that are already raw bytes, kept
// for callers who want only the wire framing and key binding around their
// own serialization.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String round-trips Go strings through []byte. Assumes UTF-8 by
// convention; no validation is performed.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
