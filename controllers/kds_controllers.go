package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yudharma/resto-pos/kds"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler -> endpoint WebSocket for the kitchen display
func KDSHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "chef" && role != "cashier" && role != "admin" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	kds.RegisterClient(ws, tenantID(c))

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
}
