// Package protocol implements the message vocabulary shared by a
// conferencing application and the host that embeds it.
//
// The physical channel between the two sides (an iframe postMessage bridge,
// a webview bridge, a websocket) carries JSON frames but has no notion of
// request/response correlation. The Controller adds it:
//   - "event" frames are one-way: host commands inbound, notifications outbound
//   - "request" frames carry a unique ID and expect exactly one "response"
//   - "response" frames are routed back to the waiting SendRequest call
//
// Both sides run a Controller. Listeners registered with OnEvent and
// OnRequest are invoked synchronously on the read loop, one frame at a time,
// and report whether they handled the frame so the controller can apply its
// fallback policy to unmatched frames.
//
// Example usage:
//
//	controller := protocol.NewController(log, transport)
//	controller.OnRequest(func(ctx context.Context, req *protocol.Request, reply protocol.ReplyFunc) bool {
//	    if req.Name() != "is-audio-muted" {
//	        return false
//	    }
//	    reply(false)
//	    return true
//	})
//	controller.Start(ctx)
//
//	// From the host side:
//	muted, err := controller.SendRequest(ctx, map[string]any{"name": "is-audio-muted"}, 5*time.Second)
package protocol
