package simconf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/wagiedev/conference-embed-go/internal/channel"
)

var (
	// ErrNotJoined is returned for operations that need an active conference.
	ErrNotJoined = errors.New("conference not joined")

	// ErrAlreadyJoined is returned by Join while a conference is active.
	ErrAlreadyJoined = errors.New("conference already joined")

	// ErrScreenSharingUnavailable is returned when screen sharing is toggled
	// while the capability is disabled.
	ErrScreenSharingUnavailable = errors.New("screen sharing not available")

	// ErrUnknownParticipant is returned for ids not in the conference.
	ErrUnknownParticipant = errors.New("unknown participant")
)

// Notifier receives the state changes of the engine.
//
// *channel.Channel satisfies this interface.
type Notifier interface {
	NotifyUserJoined(ctx context.Context, id string, props map[string]any)
	NotifyUserLeft(ctx context.Context, id string, props map[string]any)
	NotifyAvatarChanged(ctx context.Context, id, avatarURL string)
	NotifyDisplayNameChanged(ctx context.Context, id string, name channel.DisplayName)
	NotifyConferenceJoined(ctx context.Context, roomName, id string, props map[string]any)
	NotifyConferenceLeft(ctx context.Context, roomName string)
	NotifyReadyToClose(ctx context.Context)
	NotifyAudioMutedStatusChanged(ctx context.Context, muted bool)
	NotifyVideoMutedStatusChanged(ctx context.Context, muted bool)
	NotifyAudioAvailabilityChanged(ctx context.Context, available bool)
	NotifyVideoAvailabilityChanged(ctx context.Context, available bool)
	NotifyOnStageParticipantChanged(ctx context.Context, id string)
	NotifyFeedbackSubmitted(ctx context.Context)
	NotifyScreenSharingStatusChanged(ctx context.Context, on bool)
	NotifyLocalRaisedHandStatusChanged(ctx context.Context, raised bool)
	NotifyInitiallyMuted(ctx context.Context)
}

// Options configures an Engine.
type Options struct {
	// Room is the conference room name.
	Room string

	// DisplayName is the initial local display name.
	DisplayName string

	// StartAudioMuted joins with the microphone muted.
	StartAudioMuted bool

	// ScreenSharingEnabled is the initial screen-sharing capability.
	ScreenSharingEnabled bool
}

// Participant is a remote conference member.
type Participant struct {
	ID          string
	DisplayName string
}

// Feedback is one submitted call rating.
type Feedback struct {
	Score   float64
	Message string
}

// State is a snapshot of the engine.
type State struct {
	Room                 string
	Joined               bool
	LocalID              string
	DisplayName          string
	Email                string
	AvatarURL            string
	AudioMuted           bool
	VideoMuted           bool
	AudioAvailable       bool
	VideoAvailable       bool
	RaisedHand           bool
	ScreenSharing        bool
	ScreenSharingEnabled bool
	OnStage              string
	Participants         []Participant
	Feedback             []Feedback
	FilmstripVisible     bool
	ChatOpen             bool
	ContactListOpen      bool
	DeviceDialogOpened   int
}

// Engine is an in-memory conference.
//
// The engine never holds its lock while calling the Notifier or capability
// subscribers, so both may call back into it.
type Engine struct {
	log *slog.Logger

	mu          sync.Mutex
	notifier    Notifier
	state       State
	subscribers map[int]func(bool)
	nextSubID   int
}

var (
	_ channel.Conference = (*Engine)(nil)
	_ channel.Panels     = (*Engine)(nil)
)

// New creates an engine that has not joined its room yet.
func New(log *slog.Logger, opts Options) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	room := opts.Room
	if room == "" {
		room = "lobby"
	}

	return &Engine{
		log: log.With("component", "simconf", "room", room),
		state: State{
			Room:                 room,
			DisplayName:          opts.DisplayName,
			AudioMuted:           opts.StartAudioMuted,
			AudioAvailable:       true,
			VideoAvailable:       true,
			ScreenSharingEnabled: opts.ScreenSharingEnabled,
			FilmstripVisible:     true,
		},
		subscribers: make(map[int]func(bool)),
	}
}

// SetNotifier sets the receiver of state changes. Changes made while no
// notifier is set are not reported.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.notifier = n
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	s.Participants = slices.Clone(e.state.Participants)
	s.Feedback = slices.Clone(e.state.Feedback)

	return s
}

func (e *Engine) report(fn func(Notifier)) {
	e.mu.Lock()
	n := e.notifier
	e.mu.Unlock()

	if n != nil {
		fn(n)
	}
}

// Join enters the room and assigns the local participant id.
func (e *Engine) Join(ctx context.Context) error {
	e.mu.Lock()

	if e.state.Joined {
		e.mu.Unlock()

		return ErrAlreadyJoined
	}

	e.state.Joined = true
	e.state.LocalID = uuid.NewString()
	room, id, name := e.state.Room, e.state.LocalID, e.state.DisplayName
	startMuted := e.state.AudioMuted
	e.mu.Unlock()

	e.log.Info("Joined conference", "id", id)

	e.report(func(n Notifier) {
		n.NotifyConferenceJoined(ctx, room, id, map[string]any{"displayName": name})

		if startMuted {
			n.NotifyInitiallyMuted(ctx)
		}
	})

	return nil
}

// Leave exits the room. Leaving twice is a no-op.
func (e *Engine) Leave(ctx context.Context) {
	e.mu.Lock()

	if !e.state.Joined {
		e.mu.Unlock()

		return
	}

	e.state.Joined = false
	e.state.Participants = nil
	e.state.OnStage = ""
	e.state.RaisedHand = false
	e.state.ScreenSharing = false
	room := e.state.Room
	e.mu.Unlock()

	e.log.Info("Left conference")

	e.report(func(n Notifier) {
		n.NotifyConferenceLeft(ctx, room)
		n.NotifyReadyToClose(ctx)
	})
}

// AddParticipant adds a remote participant and returns its id.
func (e *Engine) AddParticipant(ctx context.Context, displayName string) (string, error) {
	e.mu.Lock()

	if !e.state.Joined {
		e.mu.Unlock()

		return "", ErrNotJoined
	}

	p := Participant{ID: uuid.NewString(), DisplayName: displayName}
	e.state.Participants = append(e.state.Participants, p)
	e.mu.Unlock()

	e.log.Debug("Participant joined", "id", p.ID)

	e.report(func(n Notifier) {
		n.NotifyUserJoined(ctx, p.ID, map[string]any{"displayName": displayName})
	})

	return p.ID, nil
}

// RemoveParticipant removes a remote participant.
func (e *Engine) RemoveParticipant(ctx context.Context, id string) error {
	e.mu.Lock()

	idx := slices.IndexFunc(e.state.Participants, func(p Participant) bool { return p.ID == id })
	if idx < 0 {
		e.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}

	e.state.Participants = slices.Delete(e.state.Participants, idx, idx+1)

	onStageLeft := e.state.OnStage == id
	if onStageLeft {
		e.state.OnStage = e.state.LocalID
	}

	local := e.state.LocalID
	e.mu.Unlock()

	e.log.Debug("Participant left", "id", id)

	e.report(func(n Notifier) {
		n.NotifyUserLeft(ctx, id, nil)

		if onStageLeft {
			n.NotifyOnStageParticipantChanged(ctx, local)
		}
	})

	return nil
}

// SetOnStage puts a participant on the large video.
func (e *Engine) SetOnStage(ctx context.Context, id string) error {
	e.mu.Lock()

	known := id == e.state.LocalID || slices.ContainsFunc(e.state.Participants, func(p Participant) bool {
		return p.ID == id
	})
	if !e.state.Joined || !known {
		e.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
	}

	e.state.OnStage = id
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyOnStageParticipantChanged(ctx, id) })

	return nil
}

// SetAudioAvailable changes whether a microphone is available.
func (e *Engine) SetAudioAvailable(ctx context.Context, available bool) {
	e.mu.Lock()
	e.state.AudioAvailable = available
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyAudioAvailabilityChanged(ctx, available) })
}

// SetVideoAvailable changes whether a camera is available.
func (e *Engine) SetVideoAvailable(ctx context.Context, available bool) {
	e.mu.Lock()
	e.state.VideoAvailable = available
	e.mu.Unlock()

	e.report(func(n Notifier) { n.NotifyVideoAvailabilityChanged(ctx, available) })
}

// SetScreenSharingEnabled changes the screen-sharing capability and informs
// the subscribers when it actually changes.
func (e *Engine) SetScreenSharingEnabled(enabled bool) {
	e.mu.Lock()

	if e.state.ScreenSharingEnabled == enabled {
		e.mu.Unlock()

		return
	}

	e.state.ScreenSharingEnabled = enabled
	subscribers := slices.Collect(maps.Values(e.subscribers))
	e.mu.Unlock()

	e.log.Debug("Screen sharing capability changed", "enabled", enabled)

	for _, fn := range subscribers {
		fn(enabled)
	}
}
