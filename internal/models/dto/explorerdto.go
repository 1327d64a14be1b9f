package dto

import (
	"bytes"
	"encoding/json"
)

type ConnectionRequestDTO struct {
	ConnectionString string `json:"connectionString" validate:"required"`
}

type CollectionsRequestDTO struct {
	ConnectionString string `json:"connectionString" validate:"required"`
	Database         string `json:"database" validate:"required"`
}

// QueryRequestDTO accepts the filter either as JSON text or as an inline object.
type QueryRequestDTO struct {
	ConnectionString string          `json:"connectionString" validate:"required"`
	Database         string          `json:"database" validate:"required"`
	Collection       string          `json:"collection" validate:"required"`
	Filter           json.RawMessage `json:"filter"`
	Page             int64           `json:"page"`
	Limit            int64           `json:"limit"`
}

// FilterText returns the filter as the text to parse.
func (q *QueryRequestDTO) FilterText() string {
	raw := bytes.TrimSpace(q.Filter)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var text string
	if raw[0] == '"' && json.Unmarshal(raw, &text) == nil {
		return text
	}
	return string(raw)
}

// SaveRequestDTO carries a partial update. ID is left untyped so strings and
// numbers both reach the service unchanged.
type SaveRequestDTO struct {
	ConnectionString string          `json:"connectionString" validate:"required"`
	Database         string          `json:"database" validate:"required"`
	Collection       string          `json:"collection" validate:"required"`
	ID               interface{}     `json:"id"`
	Update           json.RawMessage `json:"update" validate:"required"`
}
