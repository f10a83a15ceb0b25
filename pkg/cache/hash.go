package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 of data as 64 hex characters. Artifact keys
// are built from this hash of the normalized config, so two configs
// that normalize identically share one cache entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// deriveKey builds a namespaced cache key from the JSON encoding of
// parts. The full 256-bit digest keeps distinct inputs from colliding.
func deriveKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
