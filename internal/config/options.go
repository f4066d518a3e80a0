package config

import (
	"log/slog"
	"time"
)

// DefaultRequestTimeout bounds host requests when no timeout is configured.
const DefaultRequestTimeout = 10 * time.Second

// Options configures channels and hosts.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Enabled decides at Init whether the control channel is enabled.
	// If nil, the channel is enabled unconditionally.
	Enabled func() bool

	// Analytics receives the usage events emitted by commands.
	// If nil, usage events are discarded.
	Analytics func(event string)

	// RequestTimeout bounds each host request.
	// Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration

	// PingInterval enables WebSocket keepalive pings when positive.
	PingInterval time.Duration
}

// EffectiveRequestTimeout returns RequestTimeout or its default.
func (o *Options) EffectiveRequestTimeout() time.Duration {
	if o.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}

	return o.RequestTimeout
}
