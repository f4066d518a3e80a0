// Package confembed provides the embedding control channel of a
// video-conferencing application.
//
// A host (an outer page, a native shell or any other program holding the
// application) drives the conference through three kinds of messages:
// commands (one-way, host to application), requests (host to application,
// answered with exactly one reply) and notifications (one-way, application
// to host). The application side is a Channel; the host side is a Host.
// Both speak JSON frames over a Transport, correlating requests and replies
// by id.
//
// # Application Side
//
// Create a Channel over a transport with the conferencing engine as its
// collaborator, then Start it. The channel only enables itself when the
// enablement predicate holds, typically because the application was opened
// by a host:
//
//	ch := confembed.NewChannel(transport, engine, panels,
//	    confembed.WithLogger(slog.Default()),
//	    confembed.WithNavigation(confembed.Navigation{URL: openedURL}),
//	)
//	if err := ch.Start(ctx); err != nil {
//	    return err
//	}
//	defer ch.Close()
//
//	// Report state changes to the host.
//	ch.NotifyAudioMutedStatusChanged(ctx, true)
//
// # Host Side
//
// For scripted sessions, use WithHost for automatic lifecycle management:
//
//	transport, err := confembed.DialWebSocket(ctx, "ws://127.0.0.1:8765/embed", nil)
//	if err != nil {
//	    return err
//	}
//
//	err = confembed.WithHost(ctx, transport, func(h *confembed.Host) error {
//	    h.On(confembed.NotificationAudioMuteStatusChanged, func(data map[string]any) {
//	        fmt.Println("muted:", data["muted"])
//	    })
//
//	    if err := h.ExecuteCommand(ctx, confembed.CommandToggleAudio); err != nil {
//	        return err
//	    }
//
//	    muted, err := h.IsAudioMuted(ctx)
//	    if err != nil {
//	        return err
//	    }
//
//	    fmt.Println("audio muted:", muted)
//
//	    return nil
//	})
//
// # Error Handling
//
// The package re-exports the module's sentinel and typed errors. Use
// errors.Is and errors.As to inspect them:
//
//	if _, err := h.IsVideoMuted(ctx); errors.Is(err, confembed.ErrUnhandledRequest) {
//	    // The application has no enabled control channel.
//	}
package confembed
