package channel

// CommandName identifies a command sent by the host.
type CommandName string

// Commands understood by the registry.
const (
	CommandDisplayName               CommandName = "display-name"
	CommandSubmitFeedback            CommandName = "submit-feedback"
	CommandToggleAudio               CommandName = "toggle-audio"
	CommandToggleVideo               CommandName = "toggle-video"
	CommandToggleFilmStrip           CommandName = "toggle-film-strip"
	CommandToggleRaiseHand           CommandName = "toggle-raise-hand"
	CommandToggleChat                CommandName = "toggle-chat"
	CommandToggleContactList         CommandName = "toggle-contact-list"
	CommandToggleShareScreen         CommandName = "toggle-share-screen"
	CommandVideoHangup               CommandName = "video-hangup"
	CommandEmail                     CommandName = "email"
	CommandAvatarURL                 CommandName = "avatar-url"
	CommandOpenDeviceSelectionDialog CommandName = "open-device-selection-dialog"
)

// RequestName identifies a query sent by the host.
type RequestName string

// Requests answered by the dispatcher.
const (
	RequestIsAudioMuted     RequestName = "is-audio-muted"
	RequestIsVideoMuted     RequestName = "is-video-muted"
	RequestIsAudioAvailable RequestName = "is-audio-available"
	RequestIsVideoAvailable RequestName = "is-video-available"
)

// NotificationName is the name discriminant of an outbound notification.
type NotificationName string

// Notifications sent to the host.
const (
	NotificationLargeVideoVisibilityChanged  NotificationName = "large-video-visibility-changed"
	NotificationParticipantJoined            NotificationName = "participant-joined"
	NotificationParticipantLeft              NotificationName = "participant-left"
	NotificationAvatarChanged                NotificationName = "avatar-changed"
	NotificationDisplayNameChanged           NotificationName = "display-name-change"
	NotificationConferenceJoined             NotificationName = "video-conference-joined"
	NotificationConferenceLeft               NotificationName = "video-conference-left"
	NotificationReadyToClose                 NotificationName = "video-ready-to-close"
	NotificationAudioMuteStatusChanged       NotificationName = "audio-mute-status-changed"
	NotificationVideoMuteStatusChanged       NotificationName = "video-mute-status-changed"
	NotificationAudioAvailabilityChanged     NotificationName = "audio-availability-changed"
	NotificationVideoAvailabilityChanged     NotificationName = "video-availability-changed"
	NotificationOnStageParticipantChanged    NotificationName = "on-stage-participant-changed"
	NotificationFeedbackSubmitted            NotificationName = "feedback-submitted"
	NotificationScreenSharingStatusChanged   NotificationName = "screen-sharing-status-changed"
	NotificationLocalRaisedHandStatusChanged NotificationName = "local-raised-hand-status-changed"
	NotificationCameraErrorHappened          NotificationName = "camera-error-happened"
	NotificationMicErrorHappened             NotificationName = "mic-error-happened"
	NotificationSuboptimalExperience         NotificationName = "suboptimal-experience"
	NotificationUserKicked                   NotificationName = "user-kicked"
	NotificationConferenceDestroyed          NotificationName = "conference-destroyed"
	NotificationGracefulShutdown             NotificationName = "graceful-shutdown"
	NotificationConnectionFailed             NotificationName = "connection-failed"
	NotificationInternalError                NotificationName = "internal-error"
	NotificationTokenAuthFailed              NotificationName = "token-auth-failed"
	NotificationMaxUsersLimitReached         NotificationName = "max-users-limit-reached"
	NotificationInitiallyMuted               NotificationName = "initially-muted"
)
