// Package commands defines the crownmsg CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init         Generate and store your message encryption keys
//   - fingerprint  Print a key fingerprint for out-of-band comparison
//   - session      Print the conversation id shared with a peer
//   - send         Encrypt and store a message for a peer
//   - read         Decrypt and print a conversation
//   - delete       Soft-delete a message you sent
//
// # Implementation
//
// The root command builds the dependency graph (stores, primitive suite, key
// and message services) before any subcommand runs. --host selects between
// the native primitive suite and the browser-shaped one; both produce
// interchangeable envelopes.
package commands
