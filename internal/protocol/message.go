package protocol

import (
	"context"
)

// MessageType discriminates the frames of the wire vocabulary.
type MessageType string

const (
	// TypeEvent is a one-way frame: a command from the host or a notification to it.
	TypeEvent MessageType = "event"
	// TypeRequest is a frame that expects exactly one response.
	TypeRequest MessageType = "request"
	// TypeResponse answers a request frame with the same ID.
	TypeResponse MessageType = "response"
)

// eventFrame is the wire format of one-way messages.
//
//	{"type": "event", "data": {"name": "display-name", "data": ["Alice"]}}
//	{"type": "event", "data": {"name": "audio-mute-status-changed", "muted": true}}
type eventFrame struct {
	Type MessageType    `json:"type"`
	Data map[string]any `json:"data"`
}

// requestFrame is the wire format of requests.
//
//	{"type": "request", "id": "01J9Z3...", "data": {"name": "is-audio-muted"}}
type requestFrame struct {
	Type MessageType    `json:"type"`
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// responseFrame is the wire format of responses.
//
//	{"type": "response", "id": "01J9Z3...", "result": false}
//	{"type": "response", "id": "01J9Z3...", "result": null, "error": "unhandled request"}
type responseFrame struct {
	Type   MessageType `json:"type"`
	ID     string      `json:"id"`
	Result any         `json:"result"`
	Error  string      `json:"error,omitempty"`
}

// Event is an inbound one-way frame.
type Event struct {
	// Data is the decoded "data" object of the frame.
	Data map[string]any
}

// Name returns the name discriminant of the event.
func (e *Event) Name() string {
	if s, ok := e.Data["name"].(string); ok {
		return s
	}

	return ""
}

// Args returns the positional arguments carried in the nested "data" list.
// It returns nil when the list is absent or not a list.
func (e *Event) Args() []any {
	if args, ok := e.Data["data"].([]any); ok {
		return args
	}

	return nil
}

// Request is an inbound request frame.
type Request struct {
	// ID correlates the request with its response.
	ID string

	// Data is the decoded "data" object of the frame.
	Data map[string]any
}

// Name returns the name discriminant of the request.
func (r *Request) Name() string {
	if s, ok := r.Data["name"].(string); ok {
		return s
	}

	return ""
}

// ReplyFunc delivers the result of a request. Only the first call sends a
// response; later calls are dropped.
type ReplyFunc func(result any)

// EventListener handles an inbound event and reports whether it did.
type EventListener func(ctx context.Context, event *Event) bool

// RequestListener handles an inbound request and reports whether it did.
// A listener returning true must call reply exactly once; a listener
// returning false must not call it.
type RequestListener func(ctx context.Context, req *Request, reply ReplyFunc) bool
