// Package message implements the direct message send and read flows on top
// of the hybrid encryption protocol and the external user and message stores.
package message
