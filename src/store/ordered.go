package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedEntry is one key of a JSON object, in source order.
type orderedEntry struct {
	Key string
	Raw json.RawMessage
}

// parseOrderedObject decodes a JSON object while preserving the textual
// order of its keys. encoding/json maps discard ordering, but the nested
// transaction mappings are conceptually ordered and the reconciler's
// tie-break is defined over their iteration order, so the adapter walks the
// token stream instead. null decodes to an empty object.
func parseOrderedObject(data []byte) ([]orderedEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading object start: %w", err)
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var entries []orderedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading value for key %q: %w", key, err)
		}
		entries = append(entries, orderedEntry{Key: key, Raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading object end: %w", err)
	}
	return entries, nil
}
