package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"golfcart-dashboard/internal/logger"
)

const (
	readLimit     = 4 << 10
	writeDeadline = 5 * time.Second
)

type remainingMessage struct {
	At        time.Time      `json:"at"`
	Remaining map[int]string `json:"remaining"`
}

func (h *Handler) upgrader() websocket.Upgrader {
	allowAll := allowsAny(h.opts.AllowedOrigins)
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if allowAll || origin == "" {
				return true
			}
			for _, o := range h.opts.AllowedOrigins {
				if o == origin {
					return true
				}
			}
			return false
		},
	}
}

// stream pushes the countdown snapshot to the client on every tick until
// either side closes the connection.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	up := h.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.svc.SubscribeRemaining()
	defer unsubscribe()

	readDeadline := 2 * h.opts.PingInterval
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	// The read loop only drains control frames; it ends when the peer goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(snap map[int]string) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteJSON(remainingMessage{At: h.opts.Now(), Remaining: snap}); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return false
		}
		return true
	}

	if !send(h.svc.Remaining()) {
		return
	}

	ping := time.NewTicker(h.opts.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "countdown stopped"),
					time.Now().Add(writeDeadline))
				return
			}
			if !send(snap) {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
