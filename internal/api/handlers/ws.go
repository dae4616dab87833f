package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	ws "go-cloud-drive/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ConnectWS upgrades the request and keeps the connection registered for
// upload progress notifications until the peer goes away.
func ConnectWS(c *gin.Context) {
	user := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed for %s: %v", user.ID, err)
		return
	}

	client := &ws.Client{UserID: user.ID, Conn: conn}
	manager := ws.GetManager()
	manager.RegisterClient(client)

	go func() {
		defer func() {
			manager.UnregisterClient(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
