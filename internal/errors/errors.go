package errors

import (
	"errors"
	"fmt"
)

// ConfEmbedError is the base interface for all structured errors of this module.
type ConfEmbedError interface {
	error
	IsConfEmbedError() bool
}

// Compile-time verification that all error types implement ConfEmbedError.
var (
	_ ConfEmbedError = (*BadArgumentsError)(nil)
	_ ConfEmbedError = (*RemoteError)(nil)
	_ ConfEmbedError = (*MessageDecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrAlreadyInitialized indicates Init was called more than once on a channel.
	ErrAlreadyInitialized = errors.New("control channel already initialized")

	// ErrChannelDisposed indicates the channel was disposed and cannot be re-enabled.
	ErrChannelDisposed = errors.New("control channel disposed: channels are single-use")

	// ErrNotConnected indicates the transport has no live connection.
	ErrNotConnected = errors.New("transport not connected")

	// ErrTransportClosed indicates the transport was closed.
	ErrTransportClosed = errors.New("transport closed")

	// ErrRequestTimeout indicates a request got no response in time.
	ErrRequestTimeout = errors.New("request timeout")

	// ErrControllerStopped indicates the protocol controller has stopped.
	ErrControllerStopped = errors.New("protocol controller stopped")

	// ErrUnhandledRequest indicates no listener answered a request.
	ErrUnhandledRequest = errors.New("unhandled request")

	// ErrUnknownMessageType indicates the frame type is not part of the wire vocabulary.
	// Callers should skip these frames rather than treating them as fatal.
	ErrUnknownMessageType = errors.New("unknown message type")
)

// BadArgumentsError indicates an inbound command carried arguments that do
// not match what its handler expects.
type BadArgumentsError struct {
	Command string
	Args    []any
	Err     error
}

func (e *BadArgumentsError) Error() string {
	return fmt.Sprintf("bad arguments for command %q: %v", e.Command, e.Err)
}

func (e *BadArgumentsError) Unwrap() error {
	return e.Err
}

// IsConfEmbedError implements ConfEmbedError.
func (e *BadArgumentsError) IsConfEmbedError() bool { return true }

// RemoteError carries the error message of an error response frame.
type RemoteError struct {
	RequestID string
	Message   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("request %s failed remotely: %s", e.RequestID, e.Message)
}

// Is reports ErrUnhandledRequest for responses produced by the fallback policy.
func (e *RemoteError) Is(target error) bool {
	return target == ErrUnhandledRequest && e.Message == ErrUnhandledRequest.Error()
}

// IsConfEmbedError implements ConfEmbedError.
func (e *RemoteError) IsConfEmbedError() bool { return true }

// MessageDecodeError indicates a frame could not be decoded.
// This error preserves the raw data that failed to decode.
type MessageDecodeError struct {
	RawData string
	Err     error
}

func (e *MessageDecodeError) Error() string {
	return fmt.Sprintf("failed to decode message: %v", e.Err)
}

func (e *MessageDecodeError) Unwrap() error {
	return e.Err
}

// IsConfEmbedError implements ConfEmbedError.
func (e *MessageDecodeError) IsConfEmbedError() bool { return true }
