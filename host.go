package confembed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/wagiedev/conference-embed-go/internal/protocol"
)

// NotificationHandler receives the fields of a notification, including its
// name. Handlers run on the routing goroutine and must not block.
type NotificationHandler func(data map[string]any)

// Host is the host side of the control channel: it sends commands and
// requests to the application and receives its notifications.
type Host struct {
	log        *slog.Logger
	transport  Transport
	controller *protocol.Controller
	timeout    time.Duration

	mu       sync.RWMutex
	started  bool
	closed   bool
	handlers map[NotificationName][]NotificationHandler
	catchAll []NotificationHandler
}

// NewHost creates a host over transport. Call Start before use.
func NewHost(transport Transport, opts ...Option) *Host {
	options := applyOptions(opts)
	log := loggerOrNop(options.Logger)

	h := &Host{
		log:        log.With("component", "host"),
		transport:  transport,
		controller: protocol.NewController(log, transport),
		timeout:    options.EffectiveRequestTimeout(),
		handlers:   make(map[NotificationName][]NotificationHandler),
	}

	h.controller.OnEvent(h.onEvent)

	return h
}

// Start begins routing notifications and responses.
func (h *Host) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrTransportClosed
	}

	if h.started {
		return nil
	}

	if err := h.controller.Start(ctx); err != nil {
		return fmt.Errorf("start controller: %w", err)
	}

	h.started = true

	return nil
}

// On registers fn for notifications named name. Handlers for the same name
// run in registration order.
func (h *Host) On(name NotificationName, fn NotificationHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handlers[name] = append(h.handlers[name], fn)
}

// OnAny registers fn for every notification. It runs after the handlers
// registered with On.
func (h *Host) OnAny(fn NotificationHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.catchAll = append(h.catchAll, fn)
}

func (h *Host) onEvent(_ context.Context, event *protocol.Event) bool {
	name := NotificationName(event.Name())

	h.mu.RLock()
	handlers := append(slices.Clone(h.handlers[name]), h.catchAll...)
	h.mu.RUnlock()

	if len(handlers) == 0 {
		h.log.Debug("Notification without handler", "name", name)

		return false
	}

	for _, fn := range handlers {
		fn(event.Data)
	}

	return true
}

func (h *Host) ready() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrTransportClosed
	}

	if !h.started {
		return ErrNotConnected
	}

	return nil
}

// ExecuteCommand sends a command with positional args. Commands are one-way:
// a nil error only means the frame was sent.
func (h *Host) ExecuteCommand(ctx context.Context, name CommandName, args ...any) error {
	if err := h.ready(); err != nil {
		return err
	}

	if args == nil {
		args = []any{}
	}

	h.log.Debug("Executing command", "name", name)

	return h.controller.SendEvent(ctx, map[string]any{
		"name": string(name),
		"data": args,
	})
}

// Request sends a request and returns the decoded reply.
func (h *Host) Request(ctx context.Context, name RequestName) (any, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	return h.controller.SendRequest(ctx, map[string]any{"name": string(name)}, h.timeout)
}

func (h *Host) requestBool(ctx context.Context, name RequestName) (bool, error) {
	result, err := h.Request(ctx, name)
	if err != nil {
		return false, err
	}

	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%s: unexpected reply type %T", name, result)
	}

	return b, nil
}

// IsAudioMuted asks whether the local microphone is muted.
func (h *Host) IsAudioMuted(ctx context.Context) (bool, error) {
	return h.requestBool(ctx, RequestIsAudioMuted)
}

// IsVideoMuted asks whether the local camera is muted.
func (h *Host) IsVideoMuted(ctx context.Context) (bool, error) {
	return h.requestBool(ctx, RequestIsVideoMuted)
}

// IsAudioAvailable asks whether a microphone is available.
func (h *Host) IsAudioAvailable(ctx context.Context) (bool, error) {
	return h.requestBool(ctx, RequestIsAudioAvailable)
}

// IsVideoAvailable asks whether a camera is available.
func (h *Host) IsVideoAvailable(ctx context.Context) (bool, error) {
	return h.requestBool(ctx, RequestIsVideoAvailable)
}

// Done is closed when the session ends.
func (h *Host) Done() <-chan struct{} {
	return h.controller.Done()
}

// Close stops routing and closes the transport.
// It's safe to call Close multiple times.
func (h *Host) Close() error {
	h.mu.Lock()

	if h.closed {
		h.mu.Unlock()

		return nil
	}

	h.closed = true
	h.mu.Unlock()

	h.controller.Stop()

	if err := h.transport.Close(); err != nil {
		return fmt.Errorf("close transport: %w", err)
	}

	return nil
}

// WithHost manages host lifecycle with automatic cleanup.
//
// This helper creates a host over transport, starts it, executes the
// callback function, and ensures proper cleanup via Close() when done.
//
// If the callback returns an error, it is returned to the caller.
// If Close() fails, a warning is logged but does not override the callback's error.
func WithHost(ctx context.Context, transport Transport, fn func(*Host) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)
	log := loggerOrNop(options.Logger)

	host := NewHost(transport, opts...)
	if err := host.Start(ctx); err != nil {
		return fmt.Errorf("failed to start host: %w", err)
	}

	defer func() {
		if closeErr := host.Close(); closeErr != nil {
			log.Warn("failed to close host", "error", closeErr)
		}
	}()

	return fn(host)
}
