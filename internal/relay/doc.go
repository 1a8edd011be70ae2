// Package relay is the HTTP client for a crown exchange server. It presents
// the remote exchange through the same store interfaces the local stores
// implement.
package relay
