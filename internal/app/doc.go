// Package app wires the messaging core's dependencies for the hosts.
//
// It builds the concrete stores, primitive suite and high-level services
// from Config, exposing them via the Wire struct for commands to use.
package app
