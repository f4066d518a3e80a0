package websocket

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// SessionFunc serves one host connection. The connection is closed when it
// returns.
type SessionFunc func(ctx context.Context, conn *Conn) error

// ServerOptions configures a Server.
type ServerOptions struct {
	// AllowedOrigins lists the Origin header values accepted. Empty allows all.
	AllowedOrigins []string

	// Conn is applied to every accepted connection.
	Conn ConnOptions
}

// Server accepts host connections over WebSocket.
type Server struct {
	log      *slog.Logger
	session  SessionFunc
	opts     ServerOptions
	upgrader websocket.Upgrader
}

// NewServer creates a server that runs session for every accepted connection.
func NewServer(log *slog.Logger, session SessionFunc, opts ServerOptions) *Server {
	s := &Server{
		log:     log.With("component", "websocket-server"),
		session: session,
		opts:    opts,
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")
	if slices.Contains(s.opts.AllowedOrigins, origin) {
		return true
	}

	s.log.Warn("Rejected connection from origin", "origin", origin)

	return false
}

// ServeHTTP upgrades the request and serves the session until it ends.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("WebSocket upgrade failed", "error", err)

		return
	}

	conn := NewConn(s.log, ws, s.opts.Conn)
	defer conn.Close()

	s.log.Info("Host connected", "remote", ws.RemoteAddr().String())

	if err := s.session(r.Context(), conn); err != nil {
		s.log.Warn("Session ended with error", "error", err)

		return
	}

	s.log.Info("Host disconnected", "remote", ws.RemoteAddr().String())
}

// ListenAndServe serves the WebSocket endpoint at path on addr until ctx is
// cancelled, then shuts the HTTP server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr, path string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	return s.Serve(ctx, listener, path)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, s)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.log.Info("Listening", "addr", listener.Addr().String(), "path", path)

		if err := srv.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		s.log.Info("Shutting down")

		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
