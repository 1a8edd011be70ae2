// Package hybrid implements the per-message encryption protocol for direct
// messages: AES-256-GCM payload encryption under a fresh symmetric key, the
// key wrapped twice with RSA-OAEP(SHA-256) so each participant can recover
// it independently, and a clear SHA-256 plaintext hash for post-decryption
// integrity checking.
//
// The protocol is written once against the Suite primitive interface and
// executed by two hosts (internal/suite/native, internal/suite/web) that
// must agree bit-for-bit on the wire format. See wire.go for the framing
// and the package tests for the cross-host conformance checks.
package hybrid
