package confembed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	confembed "github.com/wagiedev/conference-embed-go"
	"github.com/wagiedev/conference-embed-go/internal/simconf"
)

// session wires an application channel backed by the in-memory engine to a
// started host.
func session(t *testing.T, opts ...confembed.Option) (*simconf.Engine, *confembed.Channel, *confembed.Host) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	appSide, hostSide := newPipe()

	engine := simconf.New(nil, simconf.Options{Room: "standup"})
	ch := confembed.NewChannel(appSide, engine, engine, opts...)
	engine.SetNotifier(ch)

	require.NoError(t, ch.Start(ctx))
	t.Cleanup(func() { _ = ch.Close() })

	host := confembed.NewHost(hostSide, confembed.WithRequestTimeout(2*time.Second))
	require.NoError(t, host.Start(ctx))
	t.Cleanup(func() { _ = host.Close() })

	return engine, ch, host
}

func waitFor(t *testing.T, ch <-chan map[string]any) map[string]any {
	t.Helper()

	select {
	case data := <-ch:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")

		return nil
	}
}

func TestHost_CommandNotificationAndRequest(t *testing.T) {
	engine, _, host := session(t)
	ctx := context.Background()

	require.NoError(t, engine.Join(ctx))

	muted := make(chan map[string]any, 1)
	host.On(confembed.NotificationAudioMuteStatusChanged, func(data map[string]any) { muted <- data })

	require.NoError(t, host.ExecuteCommand(ctx, confembed.CommandToggleAudio))

	require.Equal(t, map[string]any{"name": "audio-mute-status-changed", "muted": true}, waitFor(t, muted))

	got, err := host.IsAudioMuted(ctx)
	require.NoError(t, err)
	require.True(t, got)

	got, err = host.IsVideoMuted(ctx)
	require.NoError(t, err)
	require.False(t, got)

	got, err = host.IsAudioAvailable(ctx)
	require.NoError(t, err)
	require.True(t, got)
}

func TestHost_CommandWithArguments(t *testing.T) {
	engine, _, host := session(t)
	ctx := context.Background()

	require.NoError(t, engine.Join(ctx))

	changed := make(chan map[string]any, 1)
	host.On(confembed.NotificationDisplayNameChanged, func(data map[string]any) { changed <- data })

	require.NoError(t, host.ExecuteCommand(ctx, confembed.CommandDisplayName, "Alice"))

	data := waitFor(t, changed)
	require.Equal(t, "Alice", data["displayname"])
	require.Equal(t, engine.State().LocalID, data["id"])

	// A malformed command is ignored; the session keeps working.
	require.NoError(t, host.ExecuteCommand(ctx, confembed.CommandDisplayName, 42))

	_, err := host.IsVideoAvailable(ctx)
	require.NoError(t, err)
	require.Equal(t, "Alice", engine.State().DisplayName)
}

func TestHost_AvailabilityFollowsEngine(t *testing.T) {
	engine, _, host := session(t)
	ctx := context.Background()

	engine.SetVideoAvailable(ctx, false)

	available, err := host.IsVideoAvailable(ctx)
	require.NoError(t, err)
	require.False(t, available)
}

func TestHost_BufferedScreenShare(t *testing.T) {
	engine, ch, host := session(t)
	ctx := context.Background()

	require.NoError(t, engine.Join(ctx))

	sharing := make(chan map[string]any, 1)
	host.On(confembed.NotificationScreenSharingStatusChanged, func(data map[string]any) { sharing <- data })

	require.NoError(t, host.ExecuteCommand(ctx, confembed.CommandToggleShareScreen))

	// Round trip a request so the command has been handled.
	_, err := host.IsAudioMuted(ctx)
	require.NoError(t, err)
	require.True(t, ch.PendingScreenShareToggle())

	engine.SetScreenSharingEnabled(true)

	require.Equal(t, true, waitFor(t, sharing)["on"])
}

func TestHost_DisabledChannelLeavesRequestsUnhandled(t *testing.T) {
	_, ch, host := session(t, confembed.WithEnablement(func() bool { return false }))

	require.False(t, ch.Enabled())

	_, err := host.IsAudioMuted(context.Background())
	require.ErrorIs(t, err, confembed.ErrUnhandledRequest)

	var remoteErr *confembed.RemoteError
	require.ErrorAs(t, err, &remoteErr)
}

func TestHost_NavigationEnablement(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"room": "standup"}).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		nav     confembed.Navigation
		enabled bool
	}{
		{"api id", confembed.Navigation{APIID: new(int)}, true},
		{"token in fragment", confembed.Navigation{URL: "https://meet.example.com/standup#jwt=" + token}, true},
		{"verified token", confembed.Navigation{URL: "https://meet.example.com/standup?jwt=" + token, JWTSecret: "s3cret"}, true},
		{"wrong secret", confembed.Navigation{URL: "https://meet.example.com/standup?jwt=" + token, JWTSecret: "other"}, false},
		{"standalone", confembed.Navigation{URL: "https://meet.example.com/standup"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ch, _ := session(t, confembed.WithNavigation(tt.nav))
			require.Equal(t, tt.enabled, ch.Enabled())
		})
	}
}

func TestHost_Analytics(t *testing.T) {
	events := make(chan string, 4)
	engine, _, host := session(t, confembed.WithAnalytics(func(event string) { events <- event }))
	ctx := context.Background()

	require.NoError(t, engine.Join(ctx))
	require.NoError(t, host.ExecuteCommand(ctx, confembed.CommandToggleVideo))

	select {
	case event := <-events:
		require.Equal(t, "toggle-video", event)
	case <-time.After(2 * time.Second):
		t.Fatal("analytics event not sent")
	}
}

func TestHost_NotStarted(t *testing.T) {
	_, hostSide := newPipe()
	host := confembed.NewHost(hostSide)

	require.ErrorIs(t, host.ExecuteCommand(context.Background(), confembed.CommandToggleChat), confembed.ErrNotConnected)

	_, err := host.IsAudioMuted(context.Background())
	require.ErrorIs(t, err, confembed.ErrNotConnected)

	require.NoError(t, host.Close())
	require.NoError(t, host.Close())
	require.ErrorIs(t, host.Start(context.Background()), confembed.ErrTransportClosed)
}

func TestHost_RequestTimeout(t *testing.T) {
	// Nobody reads the application side.
	_, hostSide := newPipe()

	host := confembed.NewHost(hostSide, confembed.WithRequestTimeout(50*time.Millisecond))
	require.NoError(t, host.Start(context.Background()))

	defer host.Close()

	_, err := host.IsAudioMuted(context.Background())
	require.ErrorIs(t, err, confembed.ErrRequestTimeout)
}

func TestHost_SessionEndsWhenApplicationCloses(t *testing.T) {
	_, ch, host := session(t)

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())

	select {
	case <-host.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("host did not observe the closed transport")
	}

	_, err := host.IsAudioMuted(context.Background())
	require.Error(t, err)
}

func TestChannel_StartTwice(t *testing.T) {
	_, ch, _ := session(t)

	require.ErrorIs(t, ch.Start(context.Background()), confembed.ErrAlreadyInitialized)
}

func TestWithHost_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, hostSide := newPipe()

	err := confembed.WithHost(ctx, hostSide, func(*confembed.Host) error {
		t.Error("callback should not be called with cancelled context")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithHost_CallbackErrorAndCleanup(t *testing.T) {
	appSide, hostSide := newPipe()
	errBoom := errors.New("boom")

	var captured *confembed.Host

	err := confembed.WithHost(context.Background(), hostSide, func(h *confembed.Host) error {
		captured = h

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	// The transport was closed on the way out.
	require.ErrorIs(t, appSide.SendMessage(context.Background(), []byte(`{}`)), confembed.ErrTransportClosed)
	require.ErrorIs(t, captured.ExecuteCommand(context.Background(), confembed.CommandToggleChat), confembed.ErrTransportClosed)
}

func TestHost_OnAny(t *testing.T) {
	engine, _, host := session(t)

	var names []string

	done := make(chan struct{})

	host.On(confembed.NotificationConferenceJoined, func(map[string]any) { names = append(names, "named") })
	host.OnAny(func(data map[string]any) {
		names = append(names, data["name"].(string))

		if data["name"] == string(confembed.NotificationConferenceJoined) {
			close(done)
		}
	})

	require.NoError(t, engine.Join(context.Background()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")
	}

	require.Equal(t, []string{"named", "video-conference-joined"}, names)
}
