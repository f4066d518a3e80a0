package confembed

import (
	"context"
	"net/http"

	"github.com/wagiedev/conference-embed-go/internal/config"
	"github.com/wagiedev/conference-embed-go/internal/websocket"
)

// Transport defines the interface for the physical channel between host
// and application. Implement this to provide custom transports for testing,
// mocking, or alternative bridges (e.g., a webview message bridge).
//
// The bundled implementation is a WebSocket connection, see DialWebSocket.
type Transport = config.Transport

// DialWebSocket connects to an application serving the control channel
// over WebSocket. WithPingInterval enables keepalive pings.
func DialWebSocket(ctx context.Context, url string, header http.Header, opts ...Option) (Transport, error) {
	options := applyOptions(opts)

	return websocket.Dial(ctx, loggerOrNop(options.Logger), url, header, websocket.ConnOptions{
		PingInterval: options.PingInterval,
	})
}

var _ Transport = (*websocket.Conn)(nil)

// SessionFunc runs the application side of one host connection. The
// connection is closed when it returns.
type SessionFunc func(ctx context.Context, transport Transport) error

// WebSocketHandler returns an http.Handler that upgrades each request to a
// WebSocket and runs session on it. An empty allowedOrigins accepts every
// origin.
func WebSocketHandler(session SessionFunc, allowedOrigins []string, opts ...Option) http.Handler {
	options := applyOptions(opts)

	return websocket.NewServer(loggerOrNop(options.Logger),
		func(ctx context.Context, conn *websocket.Conn) error {
			return session(ctx, conn)
		},
		websocket.ServerOptions{
			AllowedOrigins: allowedOrigins,
			Conn:           websocket.ConnOptions{PingInterval: options.PingInterval},
		},
	)
}
