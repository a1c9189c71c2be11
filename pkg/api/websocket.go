// Package api pkg/api/websocket.go — WebSocket push of channel publishes
// to browser clients.
package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/govradar/govradar/pkg/models"
)

const wsSendBuffer = 64

var upgrader = websocket.Upgrader{
	// The dashboard frontend runs on a different origin in development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsEvent is one pushed frame: the channel it came from plus the payload.
type wsEvent struct {
	Channel string      `json:"channel"`
	Payload interface{} `json:"payload"`
}

// handleWebSocket upgrades the connection and forwards every publish on
// the requested channels (query param "channels", comma separated,
// default "dashboard") to the client. Slow clients have frames dropped
// rather than blocking the publish path; broken clients are detached.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	names := []string{models.ChannelDashboard}
	if raw := r.URL.Query().Get("channels"); raw != "" {
		names = strings.Split(raw, ",")
	}

	out := make(chan wsEvent, wsSendBuffer)
	done := make(chan struct{})

	unsubs := make([]func(), 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		channel := name

		unsubs = append(unsubs, s.registry.Subscribe(channel, func(payload interface{}) {
			select {
			case out <- wsEvent{Channel: channel, Payload: payload}:
			default:
				// Slow consumer; drop rather than stall the publisher.
			}
		}))
	}

	go func() {
		defer func() {
			if err := conn.Close(); err != nil {
				log.Printf("Error closing websocket client: %v", err)
			}
		}()

		for {
			select {
			case <-done:
				return
			case ev := <-out:
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			}
		}
	}()

	// Block until the client goes away, then detach. The out channel is
	// never closed: an in-flight publish may still hit the callback after
	// unsubscribe, and a buffered send to a live channel is harmless.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)

	for _, unsub := range unsubs {
		unsub()
	}
}
