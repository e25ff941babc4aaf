package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zigbridge/zigbridge/internal/channel"
)

const (
	// Time allowed to write a message to the gateway
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the gateway
	pongWait = 60 * time.Second

	// Send pings to the gateway with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// Endpoint builds the WebSocket command-stream URL for a gateway host.
func Endpoint(host string, port int) string {
	return fmt.Sprintf("ws://%s:%d/api/commands", host, port)
}

// Client relays the gateway's command stream through the channel table,
// applying the configured per-channel inversion to every command.
type Client struct {
	endpoint string
	token    string
	table    *channel.Table
	logger   *zap.Logger

	conn *websocket.Conn
}

// NewClient creates a client for the given WebSocket endpoint. The token is
// optional; when set it is presented as a bearer token during the upgrade.
// A nil logger is replaced with a no-op logger.
func NewClient(endpoint string, token string, table *channel.Table, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		table:    table,
		logger:   logger,
	}
}

// Connect dials the gateway. It must be called before Run.
func (c *Client) Connect(ctx context.Context) error {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.endpoint, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect to gateway %s (HTTP %d): %w", c.endpoint, resp.StatusCode, err)
		}
		return fmt.Errorf("failed to connect to gateway %s: %w", c.endpoint, err)
	}

	c.conn = conn
	c.logger.Info("Connected to gateway",
		zap.String("endpoint", c.endpoint),
		zap.Int("channels", c.table.Len()),
	)
	return nil
}

// Close closes the gateway connection. Safe to call when not connected.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Run reads commands from the gateway until the context is cancelled or the
// connection fails, transforming and republishing each one. A cancelled
// context returns ctx.Err(); a closed connection returns the read error.
func (c *Client) Run(ctx context.Context) error {
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}

	// Close the connection on cancellation so the blocked read returns.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-done:
		}
	}()

	// Keep the connection alive: refresh the read deadline on every pong
	// and ping on a fixed period.
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()
	go func() {
		for {
			select {
			case <-pings.C:
				_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			case <-done:
				return
			}
		}
	}()

	for {
		var msg CommandMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("gateway read failed: %w", err)
		}

		out, relayed := c.relay(msg)
		if !relayed {
			continue
		}

		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
		if err := c.conn.WriteJSON(out); err != nil {
			return fmt.Errorf("gateway write failed: %w", err)
		}
	}
}

// relay transforms one command through the channel table. Malformed
// messages are dropped; commands for unknown channels pass through
// unchanged.
func (c *Client) relay(msg CommandMessage) (CommandMessage, bool) {
	if err := msg.Validate(); err != nil {
		c.logger.Warn("Dropping malformed command message",
			zap.String("channel", msg.Channel),
			zap.String("kind", string(msg.Kind)),
			zap.Error(err),
		)
		return msg, false
	}

	ch := c.table.Lookup(msg.Channel)
	if ch == nil {
		c.logger.Debug("Passing through command for unmanaged channel",
			zap.String("channel", msg.Channel),
		)
		return msg, true
	}

	out, err := msg.Transform(ch)
	if err != nil {
		c.logger.Warn("Dropping untransformable command message",
			zap.String("channel", msg.Channel),
			zap.Error(err),
		)
		return msg, false
	}

	c.logger.Debug("Command relayed",
		zap.String("channel", msg.Channel),
		zap.String("kind", string(msg.Kind)),
		zap.String("in", msg.Value),
		zap.String("out", out.Value),
		zap.Bool("inverted", out.Value != msg.Value),
	)
	return out, true
}
