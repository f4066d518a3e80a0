// Package errors defines error types for the conference embedding channel.
//
// This package provides the sentinel errors and structured error types
// produced by the control channel, the wire protocol controller and the
// transports. All error types support error unwrapping and can be checked
// using errors.Is and errors.As.
package errors
