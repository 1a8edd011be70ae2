// Package keys provisions and serves user key material: lazy one-time RSA
// key pair generation, PBKDF2 protection of private keys at rest, SPKI
// fingerprints, and a bounded LRU cache in front of peer public key lookups.
package keys
