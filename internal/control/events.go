package control

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamruinous/pica-emulator/internal/observer"
	"github.com/iamruinous/pica-emulator/internal/orchestrator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Observers are trusted local/LAN tooling, not browser pages
	// serving third-party content, so the usual CSRF-via-origin
	// concern does not apply here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pingInterval = 30 * time.Second

// handleEvents upgrades the connection and streams every subsequent
// world event as a PicaEvent JSON text frame until the client
// disconnects.
func (c *Control) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	reply := make(chan (<-chan orchestrator.Event), 1)
	c.orch.Inbox() <- orchestrator.SubscribeMsg{Reply: reply}
	events := <-reply

	// Drain client-initiated frames (expected to be none but a close
	// frame must still be read to notice disconnects) on its own
	// goroutine, since gorilla/websocket requires a dedicated reader.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case e := <-events:
			if err := conn.WriteJSON(observer.FromEvent(e)); err != nil {
				c.log.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
