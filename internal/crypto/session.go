package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// SessionID derives the storage partition for a two-party conversation:
// SHA-256 over the sorted pair joined with ":". Sorting first makes the id
// symmetric, so both directions of a conversation land in one partition
// regardless of who initiates. A degenerate a == b pair is allowed.
func SessionID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	sum := sha256.Sum256([]byte(a + ":" + b))
	return hex.EncodeToString(sum[:])
}
