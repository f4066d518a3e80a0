package channel

import (
	"context"
)

// toggleScreenSharing toggles screen sharing now if the capability is
// enabled, otherwise flips the buffered toggle.
func (c *Channel) toggleScreenSharing(ctx context.Context) {
	if c.conference.IsScreenSharingEnabled() {
		// The host has no result channel for commands, so a failed toggle is
		// only logged.
		if err := c.conference.ToggleScreenSharing(ctx); err != nil {
			c.log.Debug("Screen sharing toggle failed", "error", err)
		}

		return
	}

	c.mu.Lock()
	c.pendingToggle = !c.pendingToggle
	pending := c.pendingToggle
	c.mu.Unlock()

	c.log.Debug("Screen sharing not available yet, toggle buffered", "pending", pending)
}

// onScreenSharingEnabledChanged fires the buffered toggle once the
// capability becomes enabled. The buffer is left as is.
func (c *Channel) onScreenSharingEnabledChanged(enabled bool) {
	c.mu.RLock()
	pending := c.pendingToggle
	ctx := c.baseCtx
	c.mu.RUnlock()

	c.log.Debug("Screen sharing capability changed", "enabled", enabled, "pending", pending)

	if enabled && pending {
		c.toggleScreenSharing(ctx)
	}
}
