package codec

import "encoding/json"

// JSON is the default codec for configuration snapshots. Snapshots are small
// and read-mostly; readability in a shared cache beats compactness here.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
