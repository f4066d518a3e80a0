package simconf

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/conference-embed-go/internal/channel"
	"github.com/wagiedev/conference-embed-go/internal/protocol"
)

// loopTransport feeds frames straight into the attached listeners and
// records what the channel sends.
type loopTransport struct {
	mu       sync.Mutex
	sent     []map[string]any
	events   []protocol.EventListener
	requests []protocol.RequestListener
}

func (l *loopTransport) SendEvent(_ context.Context, data map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sent = append(l.sent, data)

	return nil
}

func (l *loopTransport) OnEvent(listener protocol.EventListener) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, listener)
}

func (l *loopTransport) OnRequest(listener protocol.RequestListener) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, listener)
}

func (l *loopTransport) command(name string, args ...any) bool {
	l.mu.Lock()
	listeners := append([]protocol.EventListener(nil), l.events...)
	l.mu.Unlock()

	if args == nil {
		args = []any{}
	}

	event := &protocol.Event{Data: map[string]any{"name": name, "data": args}}
	for _, listener := range listeners {
		if listener(context.Background(), event) {
			return true
		}
	}

	return false
}

func (l *loopTransport) request(name string) any {
	l.mu.Lock()
	listeners := append([]protocol.RequestListener(nil), l.requests...)
	l.mu.Unlock()

	var result any

	req := &protocol.Request{ID: "r1", Data: map[string]any{"name": name}}
	for _, listener := range listeners {
		if listener(context.Background(), req, func(r any) { result = r }) {
			break
		}
	}

	return result
}

func (l *loopTransport) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.sent))
	for _, data := range l.sent {
		names = append(names, data["name"].(string))
	}

	return names
}

func (l *loopTransport) last() map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.sent[len(l.sent)-1]
}

func newSession(t *testing.T, opts Options) (*Engine, *channel.Channel, *loopTransport) {
	t.Helper()

	transport := &loopTransport{}
	engine := New(nil, opts)
	ch := channel.New(channel.Config{
		Transport:  transport,
		Conference: engine,
		Panels:     engine,
	})
	engine.SetNotifier(ch)

	require.NoError(t, ch.Init(context.Background()))
	t.Cleanup(ch.Dispose)

	return engine, ch, transport
}

func TestEngine_JoinAndLeave(t *testing.T) {
	engine, _, transport := newSession(t, Options{Room: "standup", DisplayName: "Kiosk", StartAudioMuted: true})
	ctx := context.Background()

	require.NoError(t, engine.Join(ctx))
	require.ErrorIs(t, engine.Join(ctx), ErrAlreadyJoined)

	state := engine.State()
	require.True(t, state.Joined)

	_, err := uuid.Parse(state.LocalID)
	require.NoError(t, err)

	require.Equal(t, []string{"video-conference-joined", "initially-muted"}, transport.names())

	engine.Leave(ctx)
	engine.Leave(ctx)

	require.Equal(t, []string{
		"video-conference-joined", "initially-muted",
		"video-conference-left", "video-ready-to-close",
	}, transport.names())
	require.Equal(t, "standup", transport.last()["roomName"])
}

func TestEngine_CommandsDriveState(t *testing.T) {
	engine, _, transport := newSession(t, Options{})
	require.NoError(t, engine.Join(context.Background()))

	require.True(t, transport.command("toggle-audio"))
	require.Equal(t, true, transport.request("is-audio-muted"))
	require.Equal(t, map[string]any{"name": "audio-mute-status-changed", "muted": true}, transport.last())

	require.True(t, transport.command("toggle-video"))
	require.Equal(t, true, transport.request("is-video-muted"))

	require.True(t, transport.command("display-name", "Alice"))
	last := transport.last()
	require.Equal(t, "display-name-change", last["name"])
	require.Equal(t, "Alice", last["displayname"])
	require.Equal(t, "Alice (me)", last["formattedDisplayName"])

	require.True(t, transport.command("email", "alice@example.com"))
	require.True(t, transport.command("avatar-url", "https://example.com/a.png"))
	require.True(t, transport.command("toggle-raise-hand"))
	require.True(t, transport.command("toggle-chat"))
	require.True(t, transport.command("toggle-film-strip"))
	require.True(t, transport.command("toggle-contact-list"))
	require.True(t, transport.command("open-device-selection-dialog"))

	state := engine.State()
	require.Equal(t, "Alice", state.DisplayName)
	require.Equal(t, "alice@example.com", state.Email)
	require.Equal(t, "https://example.com/a.png", state.AvatarURL)
	require.True(t, state.RaisedHand)
	require.True(t, state.ChatOpen)
	require.False(t, state.FilmstripVisible)
	require.True(t, state.ContactListOpen)
	require.Equal(t, 1, state.DeviceDialogOpened)
}

func TestEngine_Feedback(t *testing.T) {
	engine, _, transport := newSession(t, Options{})

	require.True(t, transport.command("submit-feedback", map[string]any{"score": 4.0, "message": "good"}))
	require.Equal(t, "feedback-submitted", transport.last()["name"])

	// Out-of-range scores reach the engine and fail there; nothing is reported.
	require.True(t, transport.command("submit-feedback", map[string]any{"score": 9.0}))
	require.Equal(t, []Feedback{{Score: 4, Message: "good"}}, engine.State().Feedback)
	require.Equal(t, []string{"feedback-submitted"}, transport.names())
}

func TestEngine_HangupLeaves(t *testing.T) {
	engine, _, transport := newSession(t, Options{})
	require.NoError(t, engine.Join(context.Background()))

	require.True(t, transport.command("video-hangup"))
	require.False(t, engine.State().Joined)
	require.Contains(t, transport.names(), "video-ready-to-close")
}

func TestEngine_BufferedScreenShareFiresOnCapability(t *testing.T) {
	engine, ch, transport := newSession(t, Options{})
	require.NoError(t, engine.Join(context.Background()))

	require.True(t, transport.command("toggle-share-screen"))
	require.True(t, ch.PendingScreenShareToggle())
	require.False(t, engine.State().ScreenSharing)

	engine.SetScreenSharingEnabled(true)

	require.True(t, engine.State().ScreenSharing)
	require.Equal(t, map[string]any{"name": "screen-sharing-status-changed", "on": true}, transport.last())

	// Direct toggle once the capability is enabled.
	require.True(t, transport.command("toggle-share-screen"))
	require.False(t, engine.State().ScreenSharing)
}

func TestEngine_ScreenShareUnavailable(t *testing.T) {
	engine := New(nil, Options{})
	require.ErrorIs(t, engine.ToggleScreenSharing(context.Background()), ErrScreenSharingUnavailable)
}

func TestEngine_DisposeUnsubscribes(t *testing.T) {
	engine, ch, transport := newSession(t, Options{})

	require.True(t, transport.command("toggle-share-screen"))
	ch.Dispose()

	engine.SetScreenSharingEnabled(true)
	require.False(t, engine.State().ScreenSharing)
}

func TestEngine_Participants(t *testing.T) {
	engine, _, transport := newSession(t, Options{})
	ctx := context.Background()

	_, err := engine.AddParticipant(ctx, "Bob")
	require.ErrorIs(t, err, ErrNotJoined)

	require.NoError(t, engine.Join(ctx))

	id, err := engine.AddParticipant(ctx, "Bob")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"name": "participant-joined", "id": id, "displayName": "Bob"}, transport.last())

	require.NoError(t, engine.SetOnStage(ctx, id))
	require.Equal(t, map[string]any{"name": "on-stage-participant-changed", "id": id}, transport.last())

	require.NoError(t, engine.RemoveParticipant(ctx, id))
	require.ErrorIs(t, engine.RemoveParticipant(ctx, id), ErrUnknownParticipant)
	require.ErrorIs(t, engine.SetOnStage(ctx, id), ErrUnknownParticipant)

	// The on-stage participant left, so the local participant takes the stage.
	require.Equal(t, engine.State().LocalID, engine.State().OnStage)
	require.Empty(t, engine.State().Participants)
}

func TestEngine_AvailabilityReachesRequests(t *testing.T) {
	engine, _, transport := newSession(t, Options{})
	ctx := context.Background()

	engine.SetAudioAvailable(ctx, false)
	engine.SetVideoAvailable(ctx, false)

	require.Equal(t, false, transport.request("is-audio-available"))
	require.Equal(t, false, transport.request("is-video-available"))
}

func TestEngine_NoNotifier(t *testing.T) {
	engine := New(nil, Options{})

	require.NoError(t, engine.Join(context.Background()))
	engine.ToggleAudioMuted(false)
	require.True(t, engine.IsLocalAudioMuted())
}
