package serializer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ISOTimeLayout matches JavaScript's Date.prototype.toISOString.
	ISOTimeLayout = "2006-01-02T15:04:05.000Z"

	bsonSubtypeUUID byte = 0x04
	uuidLength           = 16
)

// Field is a single key/value pair of a serialized document.
type Field struct {
	Key   string
	Value interface{}
}

// Document is a serialized document that keeps the field order the driver returned.
type Document []Field

// Get returns the value stored under key.
func (d Document) Get(key string) (interface{}, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the top-level field names in order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, f := range d {
		keys[i] = f.Key
	}
	return keys
}

// MarshalJSON writes the document as a JSON object preserving field order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SerializeDocument converts a driver document into its JSON-safe form.
func SerializeDocument(doc bson.D) Document {
	out := make(Document, 0, len(doc))
	for _, e := range doc {
		out = append(out, Field{Key: e.Key, Value: Serialize(e.Value)})
	}
	return out
}

// SerializeDocuments converts a page of driver documents.
func SerializeDocuments(docs []bson.D) []Document {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, SerializeDocument(doc))
	}
	return out
}

// Serialize deep-converts v into a value encoding/json can marshal without losing the
// driver's information in an opaque way.
func Serialize(v interface{}) interface{} {
	switch Classify(v) {
	case KindTemporal:
		return serializeTemporal(v)
	case KindExtendedID:
		return serializeExtendedID(v)
	case KindDecimal:
		return v.(primitive.Decimal128).String()
	case KindBinary:
		return serializeBinary(v)
	case KindOtherExtended:
		return serializeOther(v)
	default:
		return serializePlain(v)
	}
}

func serializePlain(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.Null, primitive.Undefined:
		return nil
	case float64:
		return serializeFloat(val)
	case float32:
		return serializeFloat(float64(val))
	case primitive.D:
		return SerializeDocument(val)
	case primitive.M:
		return serializeMap(val)
	case map[string]interface{}:
		return serializeMap(val)
	case primitive.A:
		return serializeSlice(val)
	case []interface{}:
		return serializeSlice(val)
	default:
		return v
	}
}

func serializeFloat(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}

func serializeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = Serialize(v)
	}
	return out
}

func serializeSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = Serialize(v)
	}
	return out
}

func serializeTemporal(v interface{}) string {
	var t time.Time
	switch val := v.(type) {
	case primitive.DateTime:
		t = val.Time()
	case time.Time:
		t = val
	}
	return t.UTC().Format(ISOTimeLayout)
}

func serializeExtendedID(v interface{}) string {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.Binary:
		id, err := uuid.FromBytes(val.Data)
		if err != nil {
			return base64.StdEncoding.EncodeToString(val.Data)
		}
		return id.String()
	}
	return fmt.Sprint(v)
}

func serializeBinary(v interface{}) string {
	switch val := v.(type) {
	case primitive.Binary:
		return base64.StdEncoding.EncodeToString(val.Data)
	case []byte:
		return base64.StdEncoding.EncodeToString(val)
	}
	return fmt.Sprint(v)
}

// serializeOther renders the remaining driver types the way the mongo shell prints them.
func serializeOther(v interface{}) string {
	switch val := v.(type) {
	case primitive.Timestamp:
		return fmt.Sprintf("Timestamp(%d, %d)", val.T, val.I)
	case primitive.Regex:
		return "/" + val.Pattern + "/" + val.Options
	case primitive.MinKey:
		return "MinKey"
	case primitive.MaxKey:
		return "MaxKey"
	}
	return fmt.Sprint(v)
}
