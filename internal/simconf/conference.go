package simconf

import (
	"context"
	"fmt"

	"github.com/wagiedev/conference-embed-go/internal/channel"
)

// ChangeLocalDisplayName implements channel.Conference.
func (e *Engine) ChangeLocalDisplayName(name string) {
	e.mu.Lock()
	e.state.DisplayName = name
	id := e.state.LocalID
	e.mu.Unlock()

	e.report(func(n Notifier) {
		n.NotifyDisplayNameChanged(context.Background(), id, channel.DisplayName{
			DisplayName:          name,
			FormattedDisplayName: name + " (me)",
		})
	})
}

// ChangeLocalEmail implements channel.Conference.
func (e *Engine) ChangeLocalEmail(email string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Email = email
}

// ChangeLocalAvatarURL implements channel.Conference.
func (e *Engine) ChangeLocalAvatarURL(url string) {
	e.mu.Lock()
	e.state.AvatarURL = url
	id := e.state.LocalID
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyAvatarChanged(context.Background(), id, url) })
}

// SubmitFeedback implements channel.Conference. Scores outside 1..5 are
// rejected.
func (e *Engine) SubmitFeedback(ctx context.Context, score float64, message string) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("feedback score %v out of range [1, 5]", score)
	}

	e.mu.Lock()
	e.state.Feedback = append(e.state.Feedback, Feedback{Score: score, Message: message})
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyFeedbackSubmitted(ctx) })

	return nil
}

// ToggleAudioMuted implements channel.Conference.
func (e *Engine) ToggleAudioMuted(showUI bool) {
	e.mu.Lock()
	e.state.AudioMuted = !e.state.AudioMuted
	muted := e.state.AudioMuted
	e.mu.Unlock()

	e.log.Debug("Audio mute toggled", "muted", muted, "show_ui", showUI)

	e.report(func(n Notifier) { n.NotifyAudioMutedStatusChanged(context.Background(), muted) })
}

// ToggleVideoMuted implements channel.Conference.
func (e *Engine) ToggleVideoMuted(showUI bool) {
	e.mu.Lock()
	e.state.VideoMuted = !e.state.VideoMuted
	muted := e.state.VideoMuted
	e.mu.Unlock()

	e.log.Debug("Video mute toggled", "muted", muted, "show_ui", showUI)

	e.report(func(n Notifier) { n.NotifyVideoMutedStatusChanged(context.Background(), muted) })
}

// IsLocalAudioMuted implements channel.Conference.
func (e *Engine) IsLocalAudioMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.AudioMuted
}

// IsLocalVideoMuted implements channel.Conference.
func (e *Engine) IsLocalVideoMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.VideoMuted
}

// ToggleRaisedHand implements channel.Conference. Outside a conference it
// does nothing.
func (e *Engine) ToggleRaisedHand() {
	e.mu.Lock()

	if !e.state.Joined {
		e.mu.Unlock()

		return
	}

	e.state.RaisedHand = !e.state.RaisedHand
	raised := e.state.RaisedHand
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyLocalRaisedHandStatusChanged(context.Background(), raised) })
}

// Hangup implements channel.Conference.
func (e *Engine) Hangup(requestFeedback bool) {
	e.log.Info("Hangup", "request_feedback", requestFeedback)
	e.Leave(context.Background())
}

// IsScreenSharingEnabled implements channel.Conference.
func (e *Engine) IsScreenSharingEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.ScreenSharingEnabled
}

// ToggleScreenSharing implements channel.Conference.
func (e *Engine) ToggleScreenSharing(ctx context.Context) error {
	e.mu.Lock()

	if !e.state.ScreenSharingEnabled {
		e.mu.Unlock()

		return ErrScreenSharingUnavailable
	}

	e.state.ScreenSharing = !e.state.ScreenSharing
	on := e.state.ScreenSharing
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyScreenSharingStatusChanged(ctx, on) })

	return nil
}

// OnScreenSharingEnabledChanged implements channel.Conference.
func (e *Engine) OnScreenSharingEnabledChanged(fn func(enabled bool)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		delete(e.subscribers, id)
	}
}
