package confembed

import (
	"log/slog"
	"time"

	"github.com/wagiedev/conference-embed-go/internal/config"
	"github.com/wagiedev/conference-embed-go/internal/enablement"
)

// Options holds the configuration of channels and hosts.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

func loggerOrNop(log *slog.Logger) *slog.Logger {
	if log == nil {
		return NopLogger()
	}

	return log
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEnablement sets the predicate deciding at Start whether the control
// channel is enabled. Without it the channel is enabled unconditionally.
func WithEnablement(enabled func() bool) Option {
	return func(o *Options) {
		o.Enabled = enabled
	}
}

// Navigation describes how the application was opened.
type Navigation struct {
	// APIID is the numeric identifier assigned by the host, if any.
	APIID *int

	// URL is the URL the application was opened with.
	URL string

	// JWTSecret, when set, requires the URL token to be HS256-signed with it.
	JWTSecret string
}

// WithNavigation enables the control channel only when the application was
// opened by a host: an API id was supplied or the URL carries a jwt
// parameter in its query or fragment.
func WithNavigation(nav Navigation) Option {
	predicate := enablement.FromNavigation(
		enablement.NavigationParams{APIID: nav.APIID, URL: nav.URL},
		enablement.VerifyOptions{HS256Secret: nav.JWTSecret},
	)

	return WithEnablement(predicate)
}

// WithAnalytics sets the receiver of the usage events emitted by commands.
func WithAnalytics(send func(event string)) Option {
	return func(o *Options) {
		o.Analytics = send
	}
}

// WithRequestTimeout bounds each host request. The default is 10 seconds.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.RequestTimeout = timeout
	}
}

// WithPingInterval enables WebSocket keepalive pings for DialWebSocket.
func WithPingInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.PingInterval = interval
	}
}
