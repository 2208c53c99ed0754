package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one open tab listening for garden changes and notifications.
// Browsers never send anything meaningful, so the connection is write-only.
type Client struct {
	hub    *Hub
	conn   *ws.Conn
	send   chan []byte
	remote string
}

// NewClient ties conn to hub. remote is only used for logging.
func NewClient(hub *Hub, conn *ws.Conn, remote string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		remote: remote,
	}
}

// Serve registers the client, which queues any notifications it missed, and
// delivers messages until the peer goes away or ctx ends.
func (c *Client) Serve(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	// CloseRead discards incoming frames and cancels ctx when the peer closes.
	ctx = c.conn.CloseRead(ctx)

	if err := c.deliver(ctx); err != nil && ctx.Err() == nil {
		c.hub.logger.Debug("websocket client dropped", "remote", c.remote, "error", err)
	}
	c.conn.Close(ws.StatusNormalClosure, "")
}

// deliver writes queued messages and pings the peer between them.
func (c *Client) deliver(ctx context.Context) error {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return nil
			}
			if err := c.write(ctx, msg); err != nil {
				return err
			}
		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
