package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

// Event types carried on the order stream.
const (
	EventOrderCreated       = "ORDER_CREATED"
	EventOrderUpdated       = "ORDER_UPDATED"
	EventOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventOrderDeleted       = "ORDER_DELETED"
)

type Message struct {
	Type     string      `json:"type"`
	TenantID uint        `json:"tenant_id"`
	OrderID  uint        `json:"order_id"`
	Order    interface{} `json:"order,omitempty"`
}

// KDSHub holds every connected kitchen-display client keyed by tenant.
// Delivery is best-effort: a slow or broken client is skipped, and an
// event with zero subscribers is simply dropped.
type KDSHub struct {
	clients map[*websocket.Conn]uint // conn -> tenant id
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient adds a connection scoped to one tenant's stream.
func RegisterClient(conn *websocket.Conn, tenantID uint) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = tenantID
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

// BroadcastOrderEvent fans an order event out to every client of the
// owning tenant.
func BroadcastOrderEvent(eventType string, tenantID, orderID uint, order *models.Order) {
	msg := Message{
		Type:     eventType,
		TenantID: tenantID,
		OrderID:  orderID,
	}
	if order != nil {
		msg.Order = order
	}
	broadcast(msg)
}

func broadcast(msg Message) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("kds: marshal event: %v", err)
		}
		return
	}

	for conn, tenantID := range kdsHub.clients {
		if tenantID != msg.TenantID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("kds: send event to client: %v", err)
			}
			continue
		}
	}
}
