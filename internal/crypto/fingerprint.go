package crypto

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Fingerprint returns the SHA-256 digest of an SPKI public key encoding as
// uppercase colon-separated hex pairs, the format users compare out of band.
// Deterministic: the same key bytes always yield the same fingerprint.
func Fingerprint(spki []byte) string {
	sum := sha256.Sum256(spki)
	var b strings.Builder
	b.Grow(len(sum)*3 - 1)
	for i, octet := range sum {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02X", octet)
	}
	return b.String()
}
