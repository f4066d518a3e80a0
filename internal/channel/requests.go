package channel

import (
	"context"
)

// HandleRequest answers a query from the host.
//
// For the four known requests reply is called exactly once and HandleRequest
// reports true. For any other name reply is not called and it reports false.
func (c *Channel) HandleRequest(_ context.Context, name string, reply func(result any)) bool {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	switch RequestName(name) {
	case RequestIsAudioMuted:
		reply(c.conference.IsLocalAudioMuted())
	case RequestIsVideoMuted:
		reply(c.conference.IsLocalVideoMuted())
	case RequestIsAudioAvailable:
		reply(c.AudioAvailable())
	case RequestIsVideoAvailable:
		reply(c.VideoAvailable())
	default:
		c.log.Debug("Unknown request", "name", name)

		return false
	}

	return true
}
