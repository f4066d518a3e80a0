package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	confembed "github.com/wagiedev/conference-embed-go"
)

var (
	callURL    string
	callOrigin string
	callWatch  time.Duration
)

var callCmd = &cobra.Command{
	Use:   "call <command|request> [args...]",
	Short: "Send a command or request as the host",
	Long: `Connect to a served application as its host and send one message.

Requests (is-audio-muted, is-video-muted, is-audio-available,
is-video-available) print the reply. Anything else is sent as a command;
arguments that parse as JSON are sent decoded, others as strings.

  confembed call toggle-audio
  confembed call display-name Alice
  confembed call submit-feedback '{"score": 5, "message": "great"}'
  confembed call is-audio-muted`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callURL, "url", "", "application WebSocket URL (overrides host.url)")
	callCmd.Flags().StringVar(&callOrigin, "origin", "", "Origin header (overrides host.origin)")
	callCmd.Flags().DurationVar(&callWatch, "watch", 0, "print notifications for this long after sending")

	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)

		return err
	}

	log, closer, err := newLogger(cfg.Log)
	if err != nil {
		printError("configuring logging", err)

		return err
	}
	defer closer.Close()

	url := cfg.Host.URL
	if callURL != "" {
		url = callURL
	}

	origin := cfg.Host.Origin
	if callOrigin != "" {
		origin = callOrigin
	}

	var header http.Header
	if origin != "" {
		header = http.Header{"Origin": []string{origin}}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	transport, err := confembed.DialWebSocket(ctx, url, header, confembed.WithLogger(log))
	if err != nil {
		printError("connecting", err)

		return err
	}

	err = confembed.WithHost(ctx, transport, func(h *confembed.Host) error {
		h.OnAny(func(data map[string]any) {
			out, _ := json.Marshal(data)
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		})

		if err := send(ctx, cmd, h, args[0], args[1:]); err != nil {
			return err
		}

		if callWatch > 0 {
			select {
			case <-time.After(callWatch):
			case <-h.Done():
			case <-ctx.Done():
			}
		}

		return nil
	},
		confembed.WithLogger(log),
		confembed.WithRequestTimeout(cfg.Host.RequestTimeout.Duration),
	)
	if err != nil {
		printError(args[0], err)

		return err
	}

	return nil
}

func send(ctx context.Context, cmd *cobra.Command, h *confembed.Host, name string, rawArgs []string) error {
	if strings.HasPrefix(name, "is-") {
		result, err := h.Request(ctx, confembed.RequestName(name))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)

		return nil
	}

	return h.ExecuteCommand(ctx, confembed.CommandName(name), parseArgs(rawArgs)...)
}

// parseArgs decodes arguments that are valid JSON and keeps the rest as strings.
func parseArgs(raw []string) []any {
	args := make([]any, 0, len(raw))

	for _, s := range raw {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			v = s
		}

		args = append(args, v)
	}

	return args
}
