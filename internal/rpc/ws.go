package rpc

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades HTTP requests to WebSocket connections and runs the
// per-connection read loop. Messages on one connection are processed
// strictly in order; connections run in independent goroutines.
type WSHandler struct {
	dispatcher *Dispatcher
	sessions   *SessionTable
	upgrader   websocket.Upgrader
}

func NewWSHandler(dispatcher *Dispatcher, sessions *SessionTable, checkOrigin func(r *http.Request) bool) *WSHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &WSHandler{
		dispatcher: dispatcher,
		sessions:   sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Handle is the gin handler for the WebSocket endpoint.
func (h *WSHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	connID := uuid.New().String()
	h.sessions.Create(connID)
	log.Printf("ws: client connected: %s", connID)

	defer func() {
		h.sessions.Remove(connID)
		conn.Close()
		log.Printf("ws: client disconnected: %s", connID)
	}()

	ctx := c.Request.Context()
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws: read error on %s: %v", connID, err)
			}
			return
		}

		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		resp := h.dispatcher.HandleMessage(ctx, connID, msg)
		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			log.Printf("ws: write error on %s: %v", connID, err)
			return
		}
	}
}
