// Package serializer converts driver-native BSON values into JSON-safe values for the
// browser and parses browser-submitted JSON objects back into BSON documents.
//
// The two directions are deliberately not inverses. Serialize flattens extended types
// (dates, ObjectIDs, decimals, binary) into strings; ParseObject only rebuilds an
// extended type when the caller spells it out in Extended JSON, e.g. {"$date": ...}.
// A date that went out as "2024-01-02T03:04:05.000Z" comes back as a plain string.
package serializer
