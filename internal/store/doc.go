// Package store provides concrete implementations of the external store
// contracts the messaging core depends on: an in-memory store for tests and
// the exchange server's volatile mode, and a SQLite store for durable runs.
//
// The core itself treats both stores as out-of-scope collaborators and only
// ever talks to the domain interfaces.
package store
