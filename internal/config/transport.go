// Package config provides configuration types for the conference embedding module.
package config

import "context"

// Transport defines the interface for the physical channel to the peer.
// Implement this to provide custom transports for testing, mocking,
// or alternative bridges (e.g., a webview message bridge).
//
// The bundled implementation is the WebSocket connection returned by
// DialWebSocket and accepted by the WebSocket server.
type Transport interface {
	// ReadMessages returns channels for receiving frames and errors.
	// The message channel yields decoded JSON objects.
	// The error channel yields read errors; decode errors are not fatal.
	// Both channels are closed when reading completes.
	ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error)

	// SendMessage sends one JSON frame.
	// This method must be safe for concurrent use.
	SendMessage(ctx context.Context, data []byte) error

	// Close terminates the transport and releases resources.
	// It's safe to call Close multiple times.
	Close() error
}
