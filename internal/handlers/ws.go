package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/markerbridge/markerbridge/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS subscribes the host to bridge events and init callbacks.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", "err", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}
