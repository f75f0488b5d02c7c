package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched page bodies keyed by URL hash.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a page URL. The version segment
// lets a format change invalidate old entries without a manual wipe.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "fortscan:v1:" + hex.EncodeToString(sum[:])
}
