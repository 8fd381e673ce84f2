package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const indent = "  "

// Encode renders r in the indented JSON layout the engine reads. Missing
// tags are written as an empty list.
func Encode(r Record) ([]byte, error) {
	if r.Metadata.Tags == nil {
		r.Metadata.Tags = []string{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)

	err := enc.Encode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preset %q: %w", r.Metadata.Name, err)
	}

	return buf.Bytes(), nil
}

// Decode parses an artifact and validates the resulting record.
func Decode(data []byte) (Record, error) {
	var r Record

	err := json.Unmarshal(data, &r)
	if err != nil {
		return Record{}, fmt.Errorf("failed to decode preset: %w", err)
	}

	err = Validate(r)
	if err != nil {
		return Record{}, fmt.Errorf("invalid preset %q: %w", r.Metadata.Name, err)
	}

	return r, nil
}
