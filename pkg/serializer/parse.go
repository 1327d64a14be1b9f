package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrEmptyObject = errors.New("empty JSON input")
	ErrInvalidJSON = errors.New("input is not a single valid JSON value")
)

// ParseObject parses a JSON object into a BSON document. Input is read as relaxed
// Extended JSON, so plain JSON works unchanged and explicit wrappers such as
// {"$oid": "..."} or {"$date": "..."} produce the matching driver types.
func ParseObject(data []byte) (bson.D, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyObject
	}

	// UnmarshalExtJSON stops after the first value and ignores the rest.
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON object: %w", ErrInvalidJSON)
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	if doc == nil {
		doc = bson.D{}
	}
	return doc, nil
}
