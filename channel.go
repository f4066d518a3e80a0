package confembed

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/wagiedev/conference-embed-go/internal/channel"
	"github.com/wagiedev/conference-embed-go/internal/protocol"
)

// Conference is the slice of the conferencing engine driven by commands
// and requests.
type Conference = channel.Conference

// Panels toggles UI panels of the application.
type Panels = channel.Panels

// TrackError describes a failure to use or acquire a local media track.
type TrackError = channel.TrackError

// DisplayName is a participant's display name as set and as rendered.
type DisplayName = channel.DisplayName

// Channel is the application side of the control channel.
//
// It embeds the control channel, so every Notify method is available
// directly. Start initializes it; do not call Init yourself.
type Channel struct {
	*channel.Channel

	log        *slog.Logger
	transport  Transport
	controller *protocol.Controller

	closeOnce sync.Once
	closeErr  error
}

// NewChannel creates the application side of the control channel over
// transport. The channel is disabled until Start.
func NewChannel(transport Transport, conference Conference, panels Panels, opts ...Option) *Channel {
	options := applyOptions(opts)
	log := loggerOrNop(options.Logger)

	controller := protocol.NewController(log, transport)

	var analytics channel.Analytics
	if options.Analytics != nil {
		analytics = channel.AnalyticsFunc(options.Analytics)
	}

	return &Channel{
		Channel: channel.New(channel.Config{
			Logger:     log,
			Transport:  controller,
			Conference: conference,
			Panels:     panels,
			Analytics:  analytics,
			Enabled:    options.Enabled,
		}),
		log:        log,
		transport:  transport,
		controller: controller,
	}
}

// Start evaluates the enablement predicate, installs the command and
// request handlers when it holds, and starts routing inbound frames.
//
// A disabled channel still starts routing: requests are then answered with
// an unhandled request error and commands are ignored.
func (c *Channel) Start(ctx context.Context) error {
	if err := c.Init(ctx); err != nil {
		return err
	}

	return c.controller.Start(ctx)
}

// Done is closed when the session ends, either by Close or because the
// transport failed.
func (c *Channel) Done() <-chan struct{} {
	return c.controller.Done()
}

// Err returns the transport failure that ended the session, if any.
func (c *Channel) Err() error {
	return c.controller.FatalError()
}

// Close disposes the control channel, stops routing and closes the
// transport. It's safe to call Close multiple times.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.Dispose()
		c.controller.Stop()

		if err := c.transport.Close(); err != nil && !errors.Is(err, ErrTransportClosed) {
			c.closeErr = err
		}
	})

	return c.closeErr
}
