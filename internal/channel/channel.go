package channel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wagiedev/conference-embed-go/internal/errors"
	"github.com/wagiedev/conference-embed-go/internal/protocol"
)

// Config holds the collaborators of a Channel.
type Config struct {
	// Logger receives lifecycle and routing logs. If nil, logging is disabled.
	Logger *slog.Logger

	// Transport carries frames to and from the host. Required.
	Transport Transport

	// Conference is the conferencing engine. Required.
	Conference Conference

	// Panels toggles UI panels. Required.
	Panels Panels

	// Analytics receives usage events. Optional.
	Analytics Analytics

	// Enabled is evaluated once by Init. A nil predicate enables
	// unconditionally.
	Enabled func() bool
}

// Channel is the control channel of one embedded application instance.
type Channel struct {
	log        *slog.Logger
	transport  Transport
	conference Conference
	panels     Panels
	analytics  Analytics
	enabledFn  func() bool

	// Serializes inbound command and request dispatch.
	dispatchMu sync.Mutex

	// Serializes outbound notifications. Taken before mu.
	egressMu sync.Mutex

	mu             sync.RWMutex
	initialized    bool
	enabled        bool
	disposed       bool
	audioAvailable bool
	videoAvailable bool
	pendingToggle  bool
	commands       map[CommandName]*command
	unsubscribe    func()

	// Context used for engine calls triggered by capability changes.
	baseCtx context.Context
}

// New creates a disabled channel. Call Init to enable it.
func New(cfg Config) *Channel {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	analytics := cfg.Analytics
	if analytics == nil {
		analytics = nopAnalytics{}
	}

	return &Channel{
		log:            log.With("component", "channel"),
		transport:      cfg.Transport,
		conference:     cfg.Conference,
		panels:         cfg.Panels,
		analytics:      analytics,
		enabledFn:      cfg.Enabled,
		audioAvailable: true,
		videoAvailable: true,
		baseCtx:        context.Background(),
	}
}

// Init enables the channel if the enablement predicate holds.
//
// On success it subscribes to screen-sharing capability changes, builds the
// command registry and attaches the command and request listeners to the
// transport. When the predicate does not hold, Init is a no-op and the
// channel stays disabled.
//
// Init must be called at most once: later calls return
// ErrAlreadyInitialized, and calls after Dispose return ErrChannelDisposed.
func (c *Channel) Init(ctx context.Context) error {
	c.mu.Lock()

	if c.disposed {
		c.mu.Unlock()

		return errors.ErrChannelDisposed
	}

	if c.initialized {
		c.mu.Unlock()

		return errors.ErrAlreadyInitialized
	}

	c.initialized = true
	c.mu.Unlock()

	if c.enabledFn != nil && !c.enabledFn() {
		c.log.Info("Control channel not enabled: no embedding host detected")

		return nil
	}

	commands := c.buildCommands()

	c.mu.Lock()
	c.commands = commands
	c.baseCtx = context.WithoutCancel(ctx)
	c.enabled = true
	c.mu.Unlock()

	unsubscribe := c.conference.OnScreenSharingEnabledChanged(c.onScreenSharingEnabledChanged)

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	// The registry is complete before the transport can route anything to it.
	c.transport.OnEvent(c.onEvent)
	c.transport.OnRequest(c.onRequest)

	c.log.Info("Control channel enabled", "commands", len(commands))

	return nil
}

// Dispose disables the channel and releases the capability subscription.
//
// It is safe to call Dispose any number of times, and before or without
// Init. Listeners attached to the transport stay attached: commands and
// requests keep being answered after Dispose, only notifications stop.
func (c *Channel) Dispose() {
	c.egressMu.Lock()
	defer c.egressMu.Unlock()

	c.mu.Lock()

	c.disposed = true

	if !c.enabled {
		c.mu.Unlock()

		return
	}

	c.enabled = false
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	c.log.Info("Control channel disposed")
}

// Enabled reports whether notifications are currently transmitted.
func (c *Channel) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.enabled
}

// AudioAvailable returns the last notified audio availability.
func (c *Channel) AudioAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.audioAvailable
}

// VideoAvailable returns the last notified video availability.
func (c *Channel) VideoAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.videoAvailable
}

// PendingScreenShareToggle reports whether a screen-share toggle is buffered
// until the capability becomes enabled.
func (c *Channel) PendingScreenShareToggle() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.pendingToggle
}

// onEvent adapts HandleCommand to the transport.
func (c *Channel) onEvent(ctx context.Context, event *protocol.Event) bool {
	name := event.Name()
	if name == "" {
		return false
	}

	return c.HandleCommand(ctx, name, event.Args())
}

// onRequest adapts HandleRequest to the transport.
func (c *Channel) onRequest(ctx context.Context, req *protocol.Request, reply protocol.ReplyFunc) bool {
	return c.HandleRequest(ctx, req.Name(), reply)
}
