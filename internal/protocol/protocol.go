package protocol

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/conference-embed-go/internal/errors"
)

// Transport defines the minimal interface needed for protocol operations.
//
// This interface is satisfied by the websocket transport but allows for
// testing with mock transports.
type Transport interface {
	ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error)
	SendMessage(ctx context.Context, data []byte) error
}

// Controller manages bidirectional message communication over a Transport.
//
// The Controller handles:
//   - Sending event frames
//   - Sending request frames with unique IDs and waiting for the response
//   - Routing response frames to waiting requests
//   - Dispatching inbound events and requests to registered listeners
//
// The Controller must be started with Start() before use and manages its own
// goroutine for reading and routing messages.
type Controller struct {
	log       *slog.Logger
	transport Transport

	// Request tracking
	pendingMu sync.RWMutex
	pending   map[string]*pendingRequest

	// Listener registry for inbound frames
	listenersMu      sync.RWMutex
	eventListeners   []EventListener
	requestListeners []RequestListener

	// Fatal error handling - stores error and broadcasts via done channel
	errMu    sync.RWMutex
	fatalErr error

	// Lifecycle management
	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// pendingRequest tracks an outgoing request awaiting response.
type pendingRequest struct {
	name     string
	response chan *responseFrame
}

// NewController creates a new protocol controller.
//
// The logger will receive debug, info, warn, and error messages during
// protocol operations. The transport must be connected before calling Start().
func NewController(log *slog.Logger, transport Transport) *Controller {
	return &Controller{
		log:       log.With("component", "protocol"),
		transport: transport,
		pending:   make(map[string]*pendingRequest, 10),
		done:      make(chan struct{}),
	}
}

// closeDone safely closes the done channel exactly once.
func (c *Controller) closeDone() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// SetFatalError stores a fatal error and broadcasts to all waiters by closing done.
func (c *Controller) SetFatalError(err error) {
	c.errMu.Lock()

	if c.fatalErr == nil {
		c.fatalErr = err
	}

	c.errMu.Unlock()

	c.closeDone()
}

// FatalError returns the fatal error if one occurred.
func (c *Controller) FatalError() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()

	return c.fatalErr
}

// Done returns a channel that is closed when the controller stops.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// OnEvent registers a listener for inbound event frames.
//
// Listeners are consulted in registration order until one reports the event
// as handled. Listeners stay registered for the lifetime of the controller.
func (c *Controller) OnEvent(listener EventListener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	c.eventListeners = append(c.eventListeners, listener)
}

// OnRequest registers a listener for inbound request frames.
//
// Listeners are consulted in registration order until one reports the
// request as handled. If none does, the controller answers with an
// "unhandled request" error response so the remote side does not wait.
func (c *Controller) OnRequest(listener RequestListener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	c.requestListeners = append(c.requestListeners, listener)
}

// Start begins reading messages from the transport and routing them.
//
// This method spawns a goroutine that reads from the transport and routes
// frames. The goroutine stops when the context is cancelled, Stop is called
// or the transport is closed.
//
// Start must be called before SendRequest or any listeners will work.
func (c *Controller) Start(ctx context.Context) error {
	c.log.Debug("Starting protocol controller")

	messages, errs := c.transport.ReadMessages(ctx)

	c.wg.Add(1)

	go c.readLoop(ctx, messages, errs)

	c.log.Info("Protocol controller started")

	return nil
}

// Stop gracefully shuts down the controller.
//
// This method signals the read loop to stop and waits for completion.
// It's safe to call Stop multiple times.
func (c *Controller) Stop() {
	c.log.Debug("Stopping protocol controller")

	c.closeDone()
	c.wg.Wait()

	c.log.Info("Protocol controller stopped")
}

// SendEvent sends a one-way event frame carrying data.
//
// There is no acknowledgment; the call returns once the transport accepted
// the frame.
func (c *Controller) SendEvent(ctx context.Context, data map[string]any) error {
	frame := &eventFrame{Type: TypeEvent, Data: data}

	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := c.transport.SendMessage(ctx, payload); err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	return nil
}

// SendRequest sends a request frame and waits for the response.
//
// This method generates a unique request ID, sends the request, and blocks
// until a matching response is received or the timeout expires. The result
// is returned as decoded from JSON (bool, float64, string, map, slice, nil).
//
// Returns an error if the request fails to send, times out, the controller
// stops, or the remote side answers with an error response.
func (c *Controller) SendRequest(
	ctx context.Context,
	data map[string]any,
	timeout time.Duration,
) (any, error) {
	requestID := c.generateRequestID()
	name, _ := data["name"].(string)

	c.log.Debug("Sending request", "request_id", requestID, "name", name)

	responseChan := make(chan *responseFrame, 1)

	c.pendingMu.Lock()
	c.pending[requestID] = &pendingRequest{name: name, response: responseChan}
	c.pendingMu.Unlock()

	frame := &requestFrame{
		Type: TypeRequest,
		ID:   requestID,
		Data: maps.Clone(data),
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		c.forgetRequest(requestID)
		c.log.Error("Failed to marshal request", "error", err)

		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if err := c.transport.SendMessage(ctx, payload); err != nil {
		c.forgetRequest(requestID)
		c.log.Error("Failed to send request", "error", err)

		return nil, fmt.Errorf("send request: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case resp := <-responseChan:
		if resp.Error != "" {
			c.log.Warn("Request returned error", "request_id", requestID, "error", resp.Error)

			return nil, &errors.RemoteError{RequestID: requestID, Message: resp.Error}
		}

		c.log.Debug("Received response", "request_id", requestID)

		return resp.Result, nil

	case <-c.done:
		c.forgetRequest(requestID)

		if err := c.FatalError(); err != nil {
			c.log.Warn("Transport error during request", "request_id", requestID, "error", err)

			return nil, fmt.Errorf("transport error: %w", err)
		}

		c.log.Debug("Controller stopped during request", "request_id", requestID)

		return nil, errors.ErrControllerStopped

	case <-timer.C:
		c.forgetRequest(requestID)
		c.log.Warn("Request timed out", "request_id", requestID, "name", name, "timeout", timeout)

		return nil, fmt.Errorf("%w after %s", errors.ErrRequestTimeout, timeout)

	case <-ctx.Done():
		c.forgetRequest(requestID)
		c.log.Debug("Request cancelled", "request_id", requestID)

		return nil, ctx.Err()
	}
}

// forgetRequest drops a pending request that will not be waited on anymore.
func (c *Controller) forgetRequest(requestID string) {
	c.pendingMu.Lock()
	delete(c.pending, requestID)
	c.pendingMu.Unlock()
}

// readLoop reads messages from the transport and routes them.
func (c *Controller) readLoop(
	ctx context.Context,
	messages <-chan map[string]any,
	errs <-chan error,
) {
	defer c.wg.Done()
	defer c.log.Debug("Protocol read loop stopped")

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				c.log.Debug("Message channel closed")
				c.SetFatalError(errors.ErrTransportClosed)

				return
			}

			c.handleMessage(ctx, msg)

		case err, ok := <-errs:
			if !ok {
				errs = nil

				continue
			}

			var decodeErr *errors.MessageDecodeError
			if stderrors.As(err, &decodeErr) {
				c.log.Warn("Skipping undecodable frame", "error", err)

				continue
			}

			if err != nil {
				c.log.Debug("Transport error in protocol", "error", err)
				c.SetFatalError(err)

				return
			}

		case <-c.done:
			c.log.Debug("Protocol controller stop signal received")

			return

		case <-ctx.Done():
			c.log.Debug("Context cancelled in protocol read loop")

			return
		}
	}
}

// handleMessage routes a message based on its type.
func (c *Controller) handleMessage(ctx context.Context, msg map[string]any) {
	msgType, _ := msg["type"].(string)

	switch MessageType(msgType) {
	case TypeResponse:
		c.handleResponse(msg)

	case TypeRequest:
		c.handleRequest(ctx, msg)

	case TypeEvent:
		c.handleEvent(ctx, msg)

	default:
		c.log.Debug("Ignoring frame", "type", msgType, "error", errors.ErrUnknownMessageType)
	}
}

// handleResponse routes a response to the waiting request.
func (c *Controller) handleResponse(msg map[string]any) {
	requestID, ok := msg["id"].(string)
	if !ok {
		c.log.Warn("Response missing id")

		return
	}

	// Find and claim pending request atomically
	c.pendingMu.Lock()

	pending, exists := c.pending[requestID]
	if exists {
		delete(c.pending, requestID)
	}

	c.pendingMu.Unlock()

	if !exists {
		c.log.Warn("No pending request for response", "request_id", requestID)

		return
	}

	resp := &responseFrame{
		Type:   TypeResponse,
		ID:     requestID,
		Result: msg["result"],
	}
	resp.Error, _ = msg["error"].(string)

	c.log.Debug("Routing response", "request_id", requestID, "name", pending.name)

	// We own the pending entry now; the channel is buffered so this never blocks.
	pending.response <- resp
}

// handleEvent offers an inbound event to the registered listeners.
func (c *Controller) handleEvent(ctx context.Context, msg map[string]any) {
	data, ok := msg["data"].(map[string]any)
	if !ok {
		c.log.Warn("Event missing 'data' field")

		return
	}

	event := &Event{Data: data}

	c.listenersMu.RLock()
	listeners := c.eventListeners
	c.listenersMu.RUnlock()

	for _, listener := range listeners {
		if listener(ctx, event) {
			c.log.Debug("Event handled", "name", event.Name())

			return
		}
	}

	c.log.Debug("Event not handled", "name", event.Name())
}

// handleRequest offers an inbound request to the registered listeners.
func (c *Controller) handleRequest(ctx context.Context, msg map[string]any) {
	requestID, ok := msg["id"].(string)
	if !ok {
		c.log.Warn("Request missing id")

		return
	}

	data, _ := msg["data"].(map[string]any)
	req := &Request{ID: requestID, Data: data}

	var replied atomic.Bool

	reply := func(result any) {
		if !replied.CompareAndSwap(false, true) {
			c.log.Warn("Dropping duplicate reply", "request_id", requestID, "name", req.Name())

			return
		}

		c.sendResponse(ctx, &responseFrame{Type: TypeResponse, ID: requestID, Result: result})
	}

	c.listenersMu.RLock()
	listeners := c.requestListeners
	c.listenersMu.RUnlock()

	for _, listener := range listeners {
		if listener(ctx, req, reply) {
			c.log.Debug("Request handled", "request_id", requestID, "name", req.Name())

			return
		}
	}

	c.log.Warn("No listener handled request", "request_id", requestID, "name", req.Name())

	if replied.CompareAndSwap(false, true) {
		c.sendResponse(ctx, &responseFrame{
			Type:  TypeResponse,
			ID:    requestID,
			Error: errors.ErrUnhandledRequest.Error(),
		})
	}
}

// sendResponse marshals and sends a response frame.
func (c *Controller) sendResponse(ctx context.Context, resp *responseFrame) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.log.Error("Failed to marshal response", "request_id", resp.ID, "error", err)

		return
	}

	if err := c.transport.SendMessage(ctx, data); err != nil {
		// Don't log error if context was cancelled (expected during shutdown)
		if ctx.Err() != nil {
			c.log.Debug("Could not send response during shutdown", "error", err)

			return
		}

		c.log.Error("Failed to send response", "request_id", resp.ID, "error", err)
	}
}

// generateRequestID creates a unique request ID using ULID.
func (c *Controller) generateRequestID() string {
	return ulid.Make().String()
}
