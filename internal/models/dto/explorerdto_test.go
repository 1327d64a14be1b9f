package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryRequestDTO_FilterText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing", `{}`, ""},
		{"null", `{"filter":null}`, ""},
		{"string", `{"filter":"{\"a\":1}"}`, `{"a":1}`},
		{"inline object", `{"filter":{"a":1}}`, `{"a":1}`},
		{"broken string kept for parsing", `{"filter":"{invalid"}`, "{invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q QueryRequestDTO
			assert.NoError(t, json.Unmarshal([]byte(tt.body), &q))
			assert.Equal(t, tt.want, q.FilterText())
		})
	}
}
