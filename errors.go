package heavyselect

import "fmt"

// ConfigError reports a widget configuration that cannot be stored: either
// structurally invalid (no source, no search fields) or not serializable by
// the configured codec. It signals a programming error in the widget setup,
// not a transient fault, so callers should fail the render rather than retry.
type ConfigError struct {
	FieldID   string
	Reason    string
	EncodeErr error // set when the codec rejected the snapshot
}

func (e *ConfigError) Error() string {
	if e.EncodeErr != nil {
		return fmt.Sprintf("config for field %q is not serializable: %v", e.FieldID, e.EncodeErr)
	}
	return fmt.Sprintf("config for field %q is invalid: %s", e.FieldID, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.EncodeErr }
