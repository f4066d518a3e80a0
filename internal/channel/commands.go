package channel

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/conference-embed-go/internal/errors"
)

// command is one entry of the registry.
type command struct {
	// analytics is the usage event sent before the handler runs. Empty for none.
	analytics string

	// schema validates the positional arguments. Nil accepts anything.
	schema *jsonschema.Resolved

	handle func(ctx context.Context, args []any) error
}

// buildCommands returns a fresh registry bound to the channel's collaborators.
func (c *Channel) buildCommands() map[CommandName]*command {
	return map[CommandName]*command{
		CommandDisplayName: {
			analytics: "display.name.changed",
			schema:    stringArgSchema,
			handle: func(_ context.Context, args []any) error {
				name, err := stringArg(args, 0)
				if err != nil {
					return err
				}

				c.conference.ChangeLocalDisplayName(name)

				return nil
			},
		},
		CommandSubmitFeedback: {
			analytics: "submit.feedback",
			schema:    feedbackArgSchema,
			handle: func(ctx context.Context, args []any) error {
				score, message, err := feedbackArg(args)
				if err != nil {
					return err
				}

				// Commands have no result channel back to the host.
				if err := c.conference.SubmitFeedback(ctx, score, message); err != nil {
					c.log.Debug("Feedback submission failed", "error", err)
				}

				return nil
			},
		},
		CommandToggleAudio: {
			analytics: "toggle-audio",
			handle: func(context.Context, []any) error {
				c.log.Debug("Audio toggle: command received")
				c.conference.ToggleAudioMuted(false)

				return nil
			},
		},
		CommandToggleVideo: {
			analytics: "toggle-video",
			handle: func(context.Context, []any) error {
				c.log.Debug("Video toggle: command received")
				c.conference.ToggleVideoMuted(false)

				return nil
			},
		},
		CommandToggleFilmStrip: {
			analytics: "film.strip.toggled",
			handle: func(context.Context, []any) error {
				c.panels.ToggleFilmstrip()

				return nil
			},
		},
		CommandToggleRaiseHand: {
			handle: func(context.Context, []any) error {
				c.log.Debug("Raised hand toggle: command received")
				c.conference.ToggleRaisedHand()

				return nil
			},
		},
		CommandToggleChat: {
			analytics: "chat.toggled",
			handle: func(context.Context, []any) error {
				c.panels.ToggleChat()

				return nil
			},
		},
		CommandToggleContactList: {
			analytics: "contact.list.toggled",
			handle: func(context.Context, []any) error {
				c.panels.ToggleContactList()

				return nil
			},
		},
		CommandToggleShareScreen: {
			analytics: "screen.sharing.toggled",
			handle: func(ctx context.Context, _ []any) error {
				c.toggleScreenSharing(ctx)

				return nil
			},
		},
		CommandVideoHangup: {
			analytics: "video.hangup",
			handle: func(context.Context, []any) error {
				c.conference.Hangup(true)

				return nil
			},
		},
		CommandEmail: {
			analytics: "email.changed",
			schema:    stringArgSchema,
			handle: func(_ context.Context, args []any) error {
				email, err := stringArg(args, 0)
				if err != nil {
					return err
				}

				c.conference.ChangeLocalEmail(email)

				return nil
			},
		},
		CommandAvatarURL: {
			analytics: "avatar.url.changed",
			schema:    stringArgSchema,
			handle: func(_ context.Context, args []any) error {
				url, err := stringArg(args, 0)
				if err != nil {
					return err
				}

				c.conference.ChangeLocalAvatarURL(url)

				return nil
			},
		},
		CommandOpenDeviceSelectionDialog: {
			handle: func(context.Context, []any) error {
				c.panels.OpenDeviceSelectionDialog()

				return nil
			},
		},
	}
}

// HandleCommand routes a command from the host to its handler.
//
// It reports false for unknown names and for arguments the handler rejects;
// neither is an error and neither has a side effect. A known command runs
// exactly once with args in order.
func (c *Channel) HandleCommand(ctx context.Context, name string, args []any) bool {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.RLock()
	cmd, ok := c.commands[CommandName(name)]
	c.mu.RUnlock()

	if !ok {
		c.log.Debug("Unknown command", "name", name)

		return false
	}

	if err := c.runCommand(ctx, name, cmd, args); err != nil {
		c.log.Warn("Command rejected", "name", name, "error", err)

		return false
	}

	c.log.Debug("Command handled", "name", name)

	return true
}

// runCommand validates args, emits the analytics event and runs the handler.
func (c *Channel) runCommand(ctx context.Context, name string, cmd *command, args []any) error {
	if args == nil {
		args = []any{}
	}

	if cmd.schema != nil {
		if err := cmd.schema.Validate(args); err != nil {
			return &errors.BadArgumentsError{Command: name, Args: args, Err: err}
		}
	}

	if cmd.analytics != "" {
		c.analytics.Send(cmd.analytics)
	}

	if err := cmd.handle(ctx, args); err != nil {
		return &errors.BadArgumentsError{
			Command: name,
			Args:    args,
			Err:     fmt.Errorf("decode: %w", err),
		}
	}

	return nil
}
