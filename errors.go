package confembed

import "github.com/wagiedev/conference-embed-go/internal/errors"

// Re-export error types from internal package

// ConfEmbedError is the base interface for all structured errors of this module.
type ConfEmbedError = errors.ConfEmbedError

// BadArgumentsError indicates a command carried arguments its handler rejects.
type BadArgumentsError = errors.BadArgumentsError

// RemoteError is an error response received for a request.
type RemoteError = errors.RemoteError

// MessageDecodeError indicates an inbound frame was not valid JSON.
type MessageDecodeError = errors.MessageDecodeError

// Re-export sentinel errors from internal package.
var (
	// ErrAlreadyInitialized indicates a channel was started more than once.
	ErrAlreadyInitialized = errors.ErrAlreadyInitialized

	// ErrChannelDisposed indicates a closed channel was started again.
	ErrChannelDisposed = errors.ErrChannelDisposed

	// ErrNotConnected indicates the host was used before Start.
	ErrNotConnected = errors.ErrNotConnected

	// ErrTransportClosed indicates the transport was closed.
	ErrTransportClosed = errors.ErrTransportClosed

	// ErrRequestTimeout indicates a request got no response in time.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrControllerStopped indicates the session stopped while a request was pending.
	ErrControllerStopped = errors.ErrControllerStopped

	// ErrUnhandledRequest indicates the application did not answer a request.
	ErrUnhandledRequest = errors.ErrUnhandledRequest
)
