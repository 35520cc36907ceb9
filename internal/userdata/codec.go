package userdata

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes a document to its persisted JSON form.
func Marshal(d *Document) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal user data document: %w", err)
	}
	return data, nil
}

// Unmarshal parses a persisted document, tolerating missing sub-maps.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal user data document: %w", err)
	}
	doc.EnsureMaps()
	return &doc, nil
}
