package serializer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind is the variant a driver value belongs to.
type Kind int

const (
	// KindPlain covers JSON-native values and containers: nil, bool, string, numbers,
	// arrays and documents.
	KindPlain Kind = iota
	// KindTemporal covers BSON datetimes and time.Time.
	KindTemporal
	// KindExtendedID covers ObjectIDs and UUID binaries.
	KindExtendedID
	// KindDecimal covers Decimal128.
	KindDecimal
	// KindBinary covers non-UUID binary payloads.
	KindBinary
	// KindOtherExtended covers every other driver type. Values are stringified.
	KindOtherExtended
)

var kindNames = map[Kind]string{
	KindPlain:         "plain",
	KindTemporal:      "temporal",
	KindExtendedID:    "extended_id",
	KindDecimal:       "decimal",
	KindBinary:        "binary",
	KindOtherExtended: "other_extended",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Classify reports which variant v belongs to.
func Classify(v interface{}) Kind {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		primitive.Null, primitive.Undefined,
		primitive.D, primitive.M, map[string]interface{},
		primitive.A, []interface{}:
		return KindPlain
	case primitive.DateTime, time.Time:
		return KindTemporal
	case primitive.ObjectID:
		return KindExtendedID
	case primitive.Decimal128:
		return KindDecimal
	case primitive.Binary:
		if isUUID(val) {
			return KindExtendedID
		}
		return KindBinary
	case []byte:
		return KindBinary
	default:
		return KindOtherExtended
	}
}

func isUUID(b primitive.Binary) bool {
	return b.Subtype == bsonSubtypeUUID && len(b.Data) == uuidLength
}
