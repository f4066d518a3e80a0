package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wagiedev/conference-embed-go/internal/errors"
)

const (
	// defaultWriteWait bounds a single write when the context has no deadline.
	defaultWriteWait = 10 * time.Second

	// defaultPingInterval is how often a ping is sent to keep the peer alive.
	defaultPingInterval = 30 * time.Second

	// maxMessageSize caps inbound frames.
	maxMessageSize = 1 << 20
)

// ConnOptions tunes a connection.
type ConnOptions struct {
	// PingInterval is the keepalive period. The read deadline is twice this
	// value. Zero means defaultPingInterval.
	PingInterval time.Duration
}

// Conn is a protocol transport over one WebSocket connection.
type Conn struct {
	log          *slog.Logger
	conn         *websocket.Conn
	pingInterval time.Duration

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

// NewConn wraps an established WebSocket connection.
func NewConn(log *slog.Logger, conn *websocket.Conn, opts ConnOptions) *Conn {
	interval := opts.PingInterval
	if interval <= 0 {
		interval = defaultPingInterval
	}

	return &Conn{
		log:          log.With("component", "websocket", "remote", conn.RemoteAddr().String()),
		conn:         conn,
		pingInterval: interval,
		closed:       make(chan struct{}),
	}
}

// Dial connects to a WebSocket endpoint.
func Dial(ctx context.Context, log *slog.Logger, url string, header http.Header, opts ConnOptions) (*Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", url, err, resp.StatusCode)
		}

		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	return NewConn(log, conn, opts), nil
}

// ReadMessages starts reading frames from the connection.
//
// Undecodable frames are reported as *errors.MessageDecodeError and reading
// continues. A normal close ends the stream by closing both channels; any
// other read failure is reported on the error channel first.
func (c *Conn) ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error) {
	messages := make(chan map[string]any)
	errs := make(chan error, 1)

	readWait := 2 * c.pingInterval

	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readWait))
	})

	go c.pingLoop(ctx)

	go func() {
		defer close(messages)
		defer close(errs)
		defer c.log.Debug("ReadMessages goroutine stopped")

		for {
			kind, data, err := c.conn.ReadMessage()
			if err != nil {
				c.reportReadError(ctx, errs, err)

				return
			}

			if kind != websocket.TextMessage {
				c.log.Debug("Ignoring non-text message", "kind", kind)

				continue
			}

			var msg map[string]any

			if err := json.Unmarshal(data, &msg); err != nil {
				c.log.Debug("Failed to unmarshal JSON message", "error", err)

				select {
				case errs <- &errors.MessageDecodeError{RawData: string(data), Err: err}:
				case <-ctx.Done():
					return
				}

				continue
			}

			select {
			case messages <- msg:
			case <-ctx.Done():
				c.log.Debug("Context cancelled during message send", "error", ctx.Err())

				return
			case <-c.closed:
				return
			}
		}
	}()

	return messages, errs
}

// reportReadError classifies a read failure.
func (c *Conn) reportReadError(ctx context.Context, errs chan<- error, err error) {
	select {
	case <-c.closed:
		c.log.Debug("Connection closed locally")

		return
	default:
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.log.Info("WebSocket connection closed by peer")

		return
	}

	c.log.Warn("WebSocket read error", "error", err)

	select {
	case errs <- fmt.Errorf("websocket read: %w", err):
	case <-ctx.Done():
	}
}

// pingLoop keeps the connection alive until it is closed.
func (c *Conn) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.write(ctx, websocket.PingMessage, nil); err != nil {
				c.log.Debug("Ping failed", "error", err)

				return
			}
		case <-c.closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

// SendMessage writes one frame. It is safe for concurrent use.
func (c *Conn) SendMessage(ctx context.Context, data []byte) error {
	select {
	case <-c.closed:
		return errors.ErrTransportClosed
	default:
	}

	c.log.Debug("Sending message", "data_len", len(data))

	return c.write(ctx, websocket.TextMessage, data)
}

func (c *Conn) write(ctx context.Context, kind int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteWait)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if err := c.conn.WriteMessage(kind, data); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}

	return nil
}

// Close sends a close frame and closes the connection.
// It's safe to call Close multiple times.
func (c *Conn) Close() error {
	var err error

	c.closeOnce.Do(func() {
		close(c.closed)

		c.writeMu.Lock()
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		c.writeMu.Unlock()

		err = c.conn.Close()
		c.log.Debug("WebSocket connection closed")
	})

	return err
}
