package worldnet

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	// RequestHashField carries the request hash
	RequestHashField = "HASH"
	// ResponseHashField is where decoded responses carry their hash (tags are lower-cased)
	ResponseHashField = "hash"
)

// HashKeys is the ordered list of field names whose values are hashed.
// The order is part of the gateway protocol and must match exactly.
type HashKeys []string

// Digest calculates the gateway hash for fields
// Digest = hex(MD5(value(keys[0]) + ... + value(keys[n-1]) + secret))
// Absent fields contribute an empty string.
func Digest(fields *Fields, secret string, keys HashKeys) string {
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(fields.Value(key))
	}
	b.WriteString(secret)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Sign calculates the hash for fields and stores it under HASH
func Sign(fields *Fields, secret string, keys HashKeys) string {
	hash := Digest(fields, secret, keys)
	fields.Set(RequestHashField, hash)
	return hash
}

// Verify recomputes the hash and compares it, case-sensitively, with the value under hash.
// A record without a hash never verifies.
func Verify(fields *Fields, secret string, keys HashKeys) bool {
	got, ok := fields.Get(ResponseHashField)
	if !ok {
		return false
	}
	expected := Digest(fields, secret, keys)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
