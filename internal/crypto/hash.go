package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
)

// HashPlaintext computes the integrity hash stored unencrypted beside an
// envelope. Keeping it behind this one function isolates the clear-hash
// design: swapping to a keyed hash touches nothing else in the protocol.
func HashPlaintext(plaintext []byte) []byte {
	sum := sha256.Sum256(plaintext)
	return sum[:]
}

// VerifyPlaintextHash reports whether the decrypted plaintext matches the
// stored hash, in constant time.
func VerifyPlaintextHash(plaintext, storedHash []byte) bool {
	sum := sha256.Sum256(plaintext)
	if len(storedHash) != len(sum) {
		return false
	}
	return subtle.ConstantTimeCompare(sum[:], storedHash) == 1
}
