package controllers

import (
	"log"
	"net/http"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth happens in the middleware; the origin is the mobile shell.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	Hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

// GET /ws/progress upgrades and keeps the connection registered until the
// client goes away. Server-to-client only; inbound messages are drained.
func (r *RealtimeController) ProgressSocket(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for user %d: %v", user.ID, err)
		return
	}

	client := &services.WSClient{UserID: user.ID, Conn: conn}
	r.Hub.Register(client)

	go func() {
		defer r.Hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
