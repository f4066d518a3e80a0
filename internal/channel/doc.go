// Package channel implements the control channel between a conferencing
// application and the host that embeds it.
//
// A Channel owns three things:
//   - the command registry, consulted for every inbound event frame
//     ("display-name", "toggle-audio", ...)
//   - the request dispatcher, answering the four fixed queries
//     ("is-audio-muted", "is-audio-available", ...)
//   - the notification surface (the Notify* methods) through which the
//     application reports state changes to the host
//
// The channel is enabled at most once. Init evaluates the enablement
// predicate; when it holds, the registry and dispatcher are built and only
// then attached to the transport, so no inbound frame can observe a partial
// registry. While disabled, notifications are dropped silently. The audio and
// video availability caches are updated by their notifications whether or not
// the channel is enabled, because the dispatcher answers from them.
//
// Inbound commands and requests are dispatched one at a time. Collaborator
// calls are made without holding the state lock, so a collaborator may call a
// Notify* method from inside a command handler.
package channel
