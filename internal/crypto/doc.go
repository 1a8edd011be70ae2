// Package crypto exposes the primitives used by the messaging core.
//
// Contents
//
//   - RSA-2048 key pair generation with SPKI/PKCS#8 interchange encodings,
//     RSA-OAEP(SHA-256) key wrapping (GenerateRSAKeyPair, WrapKeyOAEP,
//     UnwrapKeyOAEP)
//   - AES-256-GCM with a split ciphertext/tag wire layout (SealGCM, OpenGCM)
//   - PBKDF2-based private key protection at rest (ProtectPrivateKey,
//     UnprotectPrivateKey)
//   - Public key fingerprints for out-of-band comparison (Fingerprint)
//   - Deterministic conversation addressing (SessionID)
//   - Plaintext integrity hashing with constant-time verification
//     (HashPlaintext, VerifyPlaintextHash)
//
// # Notes
//
// Keys cross package boundaries only as SPKI/PKCS#8 DER so that both host
// implementations consume identical bytes. Constants in constants.go fix the
// sizes and context strings the two hosts must agree on.
package crypto
