package channel

import (
	"context"
	"maps"
)

// notify transmits a notification if the channel is enabled.
//
// It is the single egress point: sends are serialized in call order, and a
// failed send is logged and dropped.
func (c *Channel) notify(ctx context.Context, name NotificationName, fields map[string]any) {
	c.egressMu.Lock()
	defer c.egressMu.Unlock()

	c.mu.RLock()
	enabled := c.enabled
	c.mu.RUnlock()

	if !enabled {
		return
	}

	data := make(map[string]any, len(fields)+1)
	maps.Copy(data, fields)
	data["name"] = string(name)

	if err := c.transport.SendEvent(ctx, data); err != nil {
		c.log.Warn("Failed to send notification", "name", name, "error", err)

		return
	}

	c.log.Debug("Notification sent", "name", name)
}

// withID spreads props and sets id. The explicit id wins over props.
func withID(id string, props map[string]any) map[string]any {
	fields := maps.Clone(props)
	if fields == nil {
		fields = make(map[string]any, 1)
	}

	fields["id"] = id

	return fields
}

// NotifyLargeVideoVisibilityChanged reports that the large video was hidden or shown.
func (c *Channel) NotifyLargeVideoVisibilityChanged(ctx context.Context, hidden bool) {
	c.notify(ctx, NotificationLargeVideoVisibilityChanged, map[string]any{"isVisible": !hidden})
}

// NotifyUserJoined reports a remote participant joining. props (display
// name, ...) are spread into the notification.
func (c *Channel) NotifyUserJoined(ctx context.Context, id string, props map[string]any) {
	c.notify(ctx, NotificationParticipantJoined, withID(id, props))
}

// NotifyUserLeft reports a remote participant leaving.
func (c *Channel) NotifyUserLeft(ctx context.Context, id string, props map[string]any) {
	c.notify(ctx, NotificationParticipantLeft, withID(id, props))
}

// NotifyAvatarChanged reports a participant's new avatar URL.
func (c *Channel) NotifyAvatarChanged(ctx context.Context, id, avatarURL string) {
	c.notify(ctx, NotificationAvatarChanged, map[string]any{
		"id":        id,
		"avatarURL": avatarURL,
	})
}

// NotifyDisplayNameChanged reports a participant's new display name.
func (c *Channel) NotifyDisplayNameChanged(ctx context.Context, id string, name DisplayName) {
	c.notify(ctx, NotificationDisplayNameChanged, map[string]any{
		"id":                   id,
		"displayname":          name.DisplayName,
		"formattedDisplayName": name.FormattedDisplayName,
	})
}

// NotifyConferenceJoined reports that the local participant joined roomName.
// props (display name, avatar URL) are spread into the notification.
func (c *Channel) NotifyConferenceJoined(ctx context.Context, roomName, id string, props map[string]any) {
	fields := withID(id, props)
	fields["roomName"] = roomName

	c.notify(ctx, NotificationConferenceJoined, fields)
}

// NotifyConferenceLeft reports that the local participant left roomName.
func (c *Channel) NotifyConferenceLeft(ctx context.Context, roomName string) {
	c.notify(ctx, NotificationConferenceLeft, map[string]any{"roomName": roomName})
}

// NotifyReadyToClose reports that the application can be closed.
func (c *Channel) NotifyReadyToClose(ctx context.Context) {
	c.notify(ctx, NotificationReadyToClose, nil)
}

// NotifyAudioMutedStatusChanged reports the local audio mute state.
func (c *Channel) NotifyAudioMutedStatusChanged(ctx context.Context, muted bool) {
	c.notify(ctx, NotificationAudioMuteStatusChanged, map[string]any{"muted": muted})
}

// NotifyVideoMutedStatusChanged reports the local video mute state.
func (c *Channel) NotifyVideoMutedStatusChanged(ctx context.Context, muted bool) {
	c.notify(ctx, NotificationVideoMuteStatusChanged, map[string]any{"muted": muted})
}

// NotifyAudioAvailabilityChanged records and reports audio availability.
// The cached value is updated even while the channel is disabled.
func (c *Channel) NotifyAudioAvailabilityChanged(ctx context.Context, available bool) {
	c.mu.Lock()
	c.audioAvailable = available
	c.mu.Unlock()

	c.notify(ctx, NotificationAudioAvailabilityChanged, map[string]any{"available": available})
}

// NotifyVideoAvailabilityChanged records and reports video availability.
// The cached value is updated even while the channel is disabled.
func (c *Channel) NotifyVideoAvailabilityChanged(ctx context.Context, available bool) {
	c.mu.Lock()
	c.videoAvailable = available
	c.mu.Unlock()

	c.notify(ctx, NotificationVideoAvailabilityChanged, map[string]any{"available": available})
}

// NotifyOnStageParticipantChanged reports the participant now on stage.
func (c *Channel) NotifyOnStageParticipantChanged(ctx context.Context, id string) {
	c.notify(ctx, NotificationOnStageParticipantChanged, map[string]any{"id": id})
}

// NotifyFeedbackSubmitted reports that feedback sent with submit-feedback
// went through.
func (c *Channel) NotifyFeedbackSubmitted(ctx context.Context) {
	c.notify(ctx, NotificationFeedbackSubmitted, nil)
}

// NotifyScreenSharingStatusChanged reports screen sharing turning on or off.
func (c *Channel) NotifyScreenSharingStatusChanged(ctx context.Context, on bool) {
	c.notify(ctx, NotificationScreenSharingStatusChanged, map[string]any{"on": on})
}

// NotifyLocalRaisedHandStatusChanged reports the local raised hand state.
func (c *Channel) NotifyLocalRaisedHandStatusChanged(ctx context.Context, raised bool) {
	c.notify(ctx, NotificationLocalRaisedHandStatusChanged, map[string]any{"raised": raised})
}

// NotifyAboutCameraError reports a failure to use or acquire the camera.
func (c *Channel) NotifyAboutCameraError(ctx context.Context, err TrackError) {
	c.notify(ctx, NotificationCameraErrorHappened, map[string]any{"error": err})
}

// NotifyAboutMicError reports a failure to use or acquire the microphone.
func (c *Channel) NotifyAboutMicError(ctx context.Context, err TrackError) {
	c.notify(ctx, NotificationMicErrorHappened, map[string]any{"error": err})
}

// NotifyAboutSuboptimalExperience reports a possibly degraded experience.
func (c *Channel) NotifyAboutSuboptimalExperience(ctx context.Context) {
	c.notify(ctx, NotificationSuboptimalExperience, nil)
}

// NotifyKicked reports that the local participant was kicked.
func (c *Channel) NotifyKicked(ctx context.Context) {
	c.notify(ctx, NotificationUserKicked, nil)
}

// NotifyConferenceDestroyed reports that the conference was destroyed.
func (c *Channel) NotifyConferenceDestroyed(ctx context.Context, msg string) {
	c.notify(ctx, NotificationConferenceDestroyed, map[string]any{"msg": msg})
}

// NotifyGracefulShutdown reports that the server is shutting down.
func (c *Channel) NotifyGracefulShutdown(ctx context.Context) {
	c.notify(ctx, NotificationGracefulShutdown, nil)
}

// NotifyConnectionFailed reports a connection failure with its raw message.
func (c *Channel) NotifyConnectionFailed(ctx context.Context, msg string) {
	c.notify(ctx, NotificationConnectionFailed, map[string]any{"msg": msg})
}

// NotifyInternalError reports an internal error with its raw message.
func (c *Channel) NotifyInternalError(ctx context.Context, msg string) {
	c.notify(ctx, NotificationInternalError, map[string]any{"msg": msg})
}

// NotifyTokenAuthFailed reports that token authentication failed.
func (c *Channel) NotifyTokenAuthFailed(ctx context.Context) {
	c.notify(ctx, NotificationTokenAuthFailed, nil)
}

// NotifyMaxUsersLimitReached reports that the conference is full.
func (c *Channel) NotifyMaxUsersLimitReached(ctx context.Context) {
	c.notify(ctx, NotificationMaxUsersLimitReached, nil)
}

// NotifyInitiallyMuted reports that the local participant was muted on join.
func (c *Channel) NotifyInitiallyMuted(ctx context.Context) {
	c.notify(ctx, NotificationInitiallyMuted, nil)
}
