package controller

import (
	"net/http"

	"hostelhub/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin is already policed by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSController ...
type WSController struct{}

// Connect upgrades the request and registers the caller with the event
// hub. The socket is push-only; inbound frames are read and discarded to
// service control messages.
func (ctrl WSController) Connect(c *gin.Context) {
	details, ok := caller(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("[%s] websocket upgrade failed: %s", c.GetString("requestId"), err)
		return
	}

	hub := service.GetHub()
	client := &service.Client{
		UserID: details.UserID,
		Send:   make(chan []byte, 256),
		Conn:   conn,
	}
	hub.Register <- client

	// read pump
	go func() {
		defer func() {
			hub.Unregister <- client
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
	// write pump
	go func() {
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				break
			}
		}
		conn.Close()
	}()
}
