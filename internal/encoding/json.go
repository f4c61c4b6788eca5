// Package encoding provides file and JSON helpers shared by the sinks and loaders.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSON unmarshals JSON data into the provided type.
// Unknown fields are ignored; trailing data after the first value is an error.
func ParseJSON[T any](data []byte) (*T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var result T
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if dec.More() {
		return nil, fmt.Errorf("failed to parse JSON: unexpected data after top-level value")
	}

	return &result, nil
}

// ToJSONIndent marshals a value to 2-space indented JSON with a trailing newline.
// HTML characters are not escaped so URLs and descriptions stay readable.
func ToJSONIndent[T any](value T) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return buf.Bytes(), nil
}
