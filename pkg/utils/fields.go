package utils

import "go.mongodb.org/mongo-driver/bson"

// CopyField copies src[srcKey] into dst[dstKey] when the key is present.
// Absent keys stay absent in dst, they are not written as nulls.
func CopyField(dst, src bson.M, srcKey, dstKey string) {
	if v, ok := src[srcKey]; ok {
		dst[dstKey] = v
	}
}

// ValueOr returns m[key] when the key is present, otherwise fallback.
// A key present with a null value returns null, not the fallback.
func ValueOr(m bson.M, key string, fallback interface{}) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
