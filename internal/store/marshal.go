package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalDoc converts a record to JSON TEXT for storage.
// Struct field order makes the serialization deterministic; HTML escaping
// is disabled so stored documents match what the CLI emits.
func marshalDoc(rec any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	// Encoder adds a trailing newline, remove it.
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalDoc parses a stored JSON TEXT document into the given record
// pointer. The record types' tolerant fields absorb malformed scalars, so
// an error here means the document itself is not valid JSON.
func unmarshalDoc(doc string, rec any) error {
	if err := json.Unmarshal([]byte(doc), rec); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}
