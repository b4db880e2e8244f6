package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"mancalaweb/internal/backend"
	"mancalaweb/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// A nil CheckOrigin rejects cross-origin handshakes.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const heartbeat = 15 * time.Second

// watch loads board id and registers ch for its updates. An unknown board
// answers 404 and returns false.
func (h *Handler) watch(c *gin.Context, ch chan []byte) (*game.Session, bool) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.Hub.Ensure(ctx, id); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": errorText(err)})
			return nil, false
		}
		h.Log.WithError(err).Debug("stream open failed")
	}
	// Watch may hand back a fresh session when the loaded one was swept.
	s := h.Hub.Watch(id, ch)
	if !s.Loaded() {
		if err := s.Open(ctx); err != nil {
			h.Log.WithError(err).Debug("stream open failed")
		}
	}
	return s, true
}

// HandleSSE handles Server-Sent Events for live board updates
func (h *Handler) HandleSSE(c *gin.Context) {
	ch := make(chan []byte, 16)
	s, ok := h.watch(c, ch)
	if !ok {
		return
	}
	defer h.Hub.Unwatch(s, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	initial, _ := json.Marshal(s.State())
	c.SSEvent("message", string(initial))
	c.Writer.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("message", "{}")
		case msg := <-ch:
			c.SSEvent("message", string(msg))
		}
		return true
	})
}

// HandleWS streams board updates over a websocket
func (h *Handler) HandleWS(c *gin.Context) {
	ch := make(chan []byte, 16)
	s, ok := h.watch(c, ch)
	if !ok {
		return
	}
	defer h.Hub.Unwatch(s, ch)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// The reader only notices the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	initial, _ := json.Marshal(s.State())
	if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case msg := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
