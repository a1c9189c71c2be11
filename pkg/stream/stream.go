// Package stream pkg/stream/stream.go implements the WebSocket event
// stream client. The sync engine owns reconnect policy; this client does
// exactly one connection lifetime: dial, read until error or Close, report
// the disconnect.
package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/govradar/govradar/pkg/models"
)

// MessageHandler receives each decoded stream message.
type MessageHandler func(msg models.StreamMessage)

// DisconnectHandler is called once when the read loop exits. err is nil
// for a clean shutdown via Close.
type DisconnectHandler func(err error)

// Client is a single-use event stream connection.
type Client struct {
	url          string
	onMessage    MessageHandler
	onDisconnect DisconnectHandler

	mu     sync.Mutex
	ws     *websocket.Conn
	done   chan struct{}
	closed bool
}

// NewClient creates a client for the given ws:// or wss:// URL. Handlers
// may be nil.
func NewClient(url string, onMessage MessageHandler, onDisconnect DisconnectHandler) *Client {
	return &Client{
		url:          url,
		onMessage:    onMessage,
		onDisconnect: onDisconnect,
		done:         make(chan struct{}),
	}
}

// Connect dials the stream endpoint and starts the read loop. It returns
// an error if the dial fails; after a successful return, disconnects are
// reported through the DisconnectHandler.
func (c *Client) Connect(ctx context.Context) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()

		return nil
	}

	c.ws = conn
	c.mu.Unlock()

	go c.readLoop(conn)

	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	// Close may already have torn the connection down; a second Close
	// error here is expected and not worth logging.
	defer func() { _ = conn.Close() }()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Close() already tore the connection down.
				c.reportDisconnect(nil)
			default:
				c.reportDisconnect(err)
			}

			return
		}

		var msg models.StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Skipping malformed stream frame: %v", err)
			continue
		}

		if c.onMessage != nil {
			c.onMessage(msg)
		}
	}
}

func (c *Client) reportDisconnect(err error) {
	if c.onDisconnect != nil {
		c.onDisconnect(err)
	}
}

// Close tears down the connection and stops the read loop. It is
// idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.done)

	if c.ws != nil {
		if err := c.ws.Close(); err != nil {
			log.Printf("Error closing stream connection: %v", err)
		}
	}
}
