package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Key identifies an item for the name service. Most keys are scalar
// strings; table-of-contents categories are keyed by a path of segments.
type Key struct {
	parts []string
	path  bool
}

func ScalarKey(s string) Key {
	return Key{parts: []string{s}}
}

func PathKey(segments ...string) Key {
	return Key{parts: append([]string(nil), segments...), path: true}
}

func (k Key) IsZero() bool {
	return len(k.parts) == 0
}

func (k Key) IsPath() bool {
	return k.path
}

// Segments returns a copy of the key parts.
func (k Key) Segments() []string {
	return append([]string(nil), k.parts...)
}

func (k Key) String() string {
	return strings.Join(k.parts, "/")
}

func (k Key) MarshalJSON() ([]byte, error) {
	if k.path {
		if k.parts == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(k.parts)
	}
	if len(k.parts) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(k.parts[0])
}

func (k *Key) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*k = Key{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return fmt.Errorf("decode key path: %w", err)
		}
		*k = PathKey(parts...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode key: %w", err)
		}
		if s == "" {
			*k = Key{}
			return nil
		}
		*k = ScalarKey(s)
		return nil
	}
}
