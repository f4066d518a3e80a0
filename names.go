package confembed

import "github.com/wagiedev/conference-embed-go/internal/channel"

// CommandName identifies a command sent by the host.
type CommandName = channel.CommandName

// RequestName identifies a query sent by the host.
type RequestName = channel.RequestName

// NotificationName is the name of a notification sent to the host.
type NotificationName = channel.NotificationName

// Commands understood by the application.
const (
	CommandDisplayName               = channel.CommandDisplayName
	CommandSubmitFeedback            = channel.CommandSubmitFeedback
	CommandToggleAudio               = channel.CommandToggleAudio
	CommandToggleVideo               = channel.CommandToggleVideo
	CommandToggleFilmStrip           = channel.CommandToggleFilmStrip
	CommandToggleRaiseHand           = channel.CommandToggleRaiseHand
	CommandToggleChat                = channel.CommandToggleChat
	CommandToggleContactList         = channel.CommandToggleContactList
	CommandToggleShareScreen         = channel.CommandToggleShareScreen
	CommandVideoHangup               = channel.CommandVideoHangup
	CommandEmail                     = channel.CommandEmail
	CommandAvatarURL                 = channel.CommandAvatarURL
	CommandOpenDeviceSelectionDialog = channel.CommandOpenDeviceSelectionDialog
)

// Requests answered by the application.
const (
	RequestIsAudioMuted     = channel.RequestIsAudioMuted
	RequestIsVideoMuted     = channel.RequestIsVideoMuted
	RequestIsAudioAvailable = channel.RequestIsAudioAvailable
	RequestIsVideoAvailable = channel.RequestIsVideoAvailable
)

// Notifications sent to the host.
const (
	NotificationLargeVideoVisibilityChanged  = channel.NotificationLargeVideoVisibilityChanged
	NotificationParticipantJoined            = channel.NotificationParticipantJoined
	NotificationParticipantLeft              = channel.NotificationParticipantLeft
	NotificationAvatarChanged                = channel.NotificationAvatarChanged
	NotificationDisplayNameChanged           = channel.NotificationDisplayNameChanged
	NotificationConferenceJoined             = channel.NotificationConferenceJoined
	NotificationConferenceLeft               = channel.NotificationConferenceLeft
	NotificationReadyToClose                 = channel.NotificationReadyToClose
	NotificationAudioMuteStatusChanged       = channel.NotificationAudioMuteStatusChanged
	NotificationVideoMuteStatusChanged       = channel.NotificationVideoMuteStatusChanged
	NotificationAudioAvailabilityChanged     = channel.NotificationAudioAvailabilityChanged
	NotificationVideoAvailabilityChanged     = channel.NotificationVideoAvailabilityChanged
	NotificationOnStageParticipantChanged    = channel.NotificationOnStageParticipantChanged
	NotificationFeedbackSubmitted            = channel.NotificationFeedbackSubmitted
	NotificationScreenSharingStatusChanged   = channel.NotificationScreenSharingStatusChanged
	NotificationLocalRaisedHandStatusChanged = channel.NotificationLocalRaisedHandStatusChanged
	NotificationCameraErrorHappened          = channel.NotificationCameraErrorHappened
	NotificationMicErrorHappened             = channel.NotificationMicErrorHappened
	NotificationSuboptimalExperience         = channel.NotificationSuboptimalExperience
	NotificationUserKicked                   = channel.NotificationUserKicked
	NotificationConferenceDestroyed          = channel.NotificationConferenceDestroyed
	NotificationGracefulShutdown             = channel.NotificationGracefulShutdown
	NotificationConnectionFailed             = channel.NotificationConnectionFailed
	NotificationInternalError                = channel.NotificationInternalError
	NotificationTokenAuthFailed              = channel.NotificationTokenAuthFailed
	NotificationMaxUsersLimitReached         = channel.NotificationMaxUsersLimitReached
	NotificationInitiallyMuted               = channel.NotificationInitiallyMuted
)
