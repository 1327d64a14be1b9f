package explorerservice

import (
	"encoding/json"
	"testing"

	"github.com/haguru/mongolens/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNativeID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name string
		id   interface{}
		want interface{}
	}{
		{"object id hex", oid.Hex(), oid},
		{"plain string", "user-1", "user-1"},
		{"23 hex digits", "507f1f77bcf86cd79943901", "507f1f77bcf86cd79943901"},
		{"integral number", float64(7), int64(7)},
		{"fractional number", 1.5, 1.5},
		{"json number", json.Number("12"), int64(12)},
		{"bool passes through", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NativeID(tt.id))
		})
	}
}

func TestParseFilter(t *testing.T) {
	for _, text := range []string{"", "  ", "{}"} {
		filter, err := ParseFilter(text)
		assert.NoError(t, err)
		assert.Empty(t, filter)
		assert.NotNil(t, filter)
	}

	filter, err := ParseFilter(`{"age":{"$gt":30}}`)
	assert.NoError(t, err)
	assert.Equal(t, "age", filter[0].Key)

	for _, text := range []string{`{"status":"open"} garbage`, `{"a":1}, {"b":2}`, `{"a":1`} {
		filter, err := ParseFilter(text)
		assert.Nil(t, filter, text)
		assert.Equal(t, models.ErrKindFilterParse, models.KindOf(err), text)
	}
}
