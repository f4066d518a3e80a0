package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	confembed "github.com/wagiedev/conference-embed-go"
	"github.com/wagiedev/conference-embed-go/internal/config"
	"github.com/wagiedev/conference-embed-go/internal/simconf"
	"github.com/wagiedev/conference-embed-go/internal/websocket"
)

var (
	serveListen string
	serveURL    string
	serveRoom   string
	serveAPIID  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a simulated conference over WebSocket",
	Long: `Serve the control channel of a simulated conference.

Every WebSocket connection is a host embedding its own conference
instance. The control channel is only enabled when the configured
navigation marks the application as embedded: an API id, or a jwt
parameter in the URL query or fragment.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides server.listen)")
	serveCmd.Flags().StringVar(&serveURL, "url", "", "navigation URL (overrides embed.url)")
	serveCmd.Flags().StringVar(&serveRoom, "room", "", "conference room (overrides embed.room)")
	serveCmd.Flags().IntVar(&serveAPIID, "api-id", -1, "host API id (overrides embed.api_id)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)

		return err
	}

	applyServeFlags(cmd, cfg)

	log, closer, err := newLogger(cfg.Log)
	if err != nil {
		printError("configuring logging", err)

		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := websocket.NewServer(log, newSession(log, cfg), websocket.ServerOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Conn:           websocket.ConnOptions{PingInterval: cfg.Server.PingInterval.Duration},
	})

	log.Info("Serving control channel",
		"listen", cfg.Server.Listen,
		"path", cfg.Server.Path,
		"room", cfg.Embed.Room,
	)

	if err := server.ListenAndServe(ctx, cfg.Server.Listen, cfg.Server.Path); err != nil {
		printError("serving", err)

		return err
	}

	log.Info("Server stopped")

	return nil
}

func applyServeFlags(cmd *cobra.Command, cfg *config.File) {
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}

	if serveURL != "" {
		cfg.Embed.URL = serveURL
	}

	if serveRoom != "" {
		cfg.Embed.Room = serveRoom
	}

	if cmd.Flags().Changed("api-id") && serveAPIID >= 0 {
		id := serveAPIID
		cfg.Embed.APIID = &id
	}
}

// newSession returns the handler that runs one embedded conference per
// host connection.
func newSession(log *slog.Logger, cfg *config.File) websocket.SessionFunc {
	return func(ctx context.Context, conn *websocket.Conn) error {
		engine := simconf.New(log, simconf.Options{
			Room:        cfg.Embed.Room,
			DisplayName: cfg.Embed.DisplayName,
		})

		ch := confembed.NewChannel(conn, engine, engine,
			confembed.WithLogger(log),
			confembed.WithNavigation(confembed.Navigation{
				APIID:     cfg.Embed.APIID,
				URL:       cfg.Embed.URL,
				JWTSecret: cfg.Embed.JWTSecret,
			}),
			confembed.WithAnalytics(func(event string) {
				log.Debug("Analytics event", "event", event)
			}),
		)
		engine.SetNotifier(ch)

		if err := ch.Start(ctx); err != nil {
			return fmt.Errorf("start channel: %w", err)
		}

		defer ch.Close()

		if err := engine.Join(ctx); err != nil {
			return fmt.Errorf("join conference: %w", err)
		}

		select {
		case <-ch.Done():
		case <-ctx.Done():
		}

		engine.Leave(context.WithoutCancel(ctx))

		return ch.Err()
	}
}
