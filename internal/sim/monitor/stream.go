package monitor

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The monitor is a local debugging surface, same-origin checks would
	// only get in the way of curl and test clients.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const streamWriteTimeout = 5 * time.Second

// handleStream upgrades the connection to a websocket and pushes every
// published tick state until the client goes away.
func (ws *WebServer) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ch := ws.subscribe()
	defer ws.unsubscribe(ch)

	// Send the latest state immediately so a late joiner is not blank
	// until the next tick.
	if state := ws.Latest(); state != nil {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(state); err != nil {
			return
		}
	}

	// Drain client messages so pings and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for state := range ch {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(state); err != nil {
			return
		}
	}
}

func (ws *WebServer) subscribe() chan TickState {
	ch := make(chan TickState, 16)
	ws.subsMu.Lock()
	ws.subs[ch] = struct{}{}
	ws.subsMu.Unlock()
	return ch
}

func (ws *WebServer) unsubscribe(ch chan TickState) {
	ws.subsMu.Lock()
	delete(ws.subs, ch)
	ws.subsMu.Unlock()
}
