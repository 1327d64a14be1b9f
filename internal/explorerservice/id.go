package explorerservice

import (
	"encoding/json"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NativeID converts an identifier received as JSON into the value stored in
// _id. 24-digit hex strings become ObjectIDs, integral numbers become int64,
// anything else is used as given.
func NativeID(id interface{}) interface{} {
	switch v := id.(type) {
	case string:
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			return oid
		}
		return v
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int64(v)
		}
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}
