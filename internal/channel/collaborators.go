package channel

import (
	"context"

	"github.com/wagiedev/conference-embed-go/internal/protocol"
)

// Transport is the message channel to the host.
//
// *protocol.Controller satisfies this interface. Listeners attached with
// OnEvent and OnRequest stay attached for the lifetime of the transport.
type Transport interface {
	SendEvent(ctx context.Context, data map[string]any) error
	OnEvent(listener protocol.EventListener)
	OnRequest(listener protocol.RequestListener)
}

// Conference is the slice of the conferencing engine driven by the channel.
type Conference interface {
	ChangeLocalDisplayName(name string)
	ChangeLocalEmail(email string)
	ChangeLocalAvatarURL(url string)

	// SubmitFeedback may fail; the channel discards the error.
	SubmitFeedback(ctx context.Context, score float64, message string) error

	// ToggleAudioMuted and ToggleVideoMuted flip the local mute state.
	// showUI is false for host-driven toggles.
	ToggleAudioMuted(showUI bool)
	ToggleVideoMuted(showUI bool)
	IsLocalAudioMuted() bool
	IsLocalVideoMuted() bool

	// ToggleRaisedHand flips the raised hand of the local participant if
	// the conference allows it.
	ToggleRaisedHand()

	// Hangup leaves the conference.
	Hangup(requestFeedback bool)

	// IsScreenSharingEnabled reports whether screen sharing can be toggled now.
	IsScreenSharingEnabled() bool

	// ToggleScreenSharing may fail; the channel discards the error.
	ToggleScreenSharing(ctx context.Context) error

	// OnScreenSharingEnabledChanged subscribes fn to capability changes and
	// returns the function that removes the subscription.
	OnScreenSharingEnabledChanged(fn func(enabled bool)) (unsubscribe func())
}

// Panels toggles UI panels of the application.
type Panels interface {
	ToggleFilmstrip()
	ToggleChat()
	ToggleContactList()
	OpenDeviceSelectionDialog()
}

// Analytics receives fire-and-forget usage events.
type Analytics interface {
	Send(event string)
}

// AnalyticsFunc adapts a function to Analytics.
type AnalyticsFunc func(event string)

// Send implements Analytics.
func (f AnalyticsFunc) Send(event string) { f(event) }

type nopAnalytics struct{}

func (nopAnalytics) Send(string) {}

// TrackError describes a failure to use or acquire a local media track.
type TrackError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// DisplayName is a participant's display name as set and as rendered.
type DisplayName struct {
	DisplayName          string
	FormattedDisplayName string
}
