package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event is what the live dashboard receives whenever a booking changes:
// enough to update a floor-plan view without a round trip to the API.
type Event struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	ResourceID uuid.UUID `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
}

var clients = make(map[*websocket.Conn]struct{})
var clientsMu sync.RWMutex
var Register = make(chan *websocket.Conn)
var Unregister = make(chan *websocket.Conn)
var Broadcast = make(chan Event, 64)

func RunHub() {
	for {
		select {
		case conn := <-Register:
			clientsMu.Lock()
			clients[conn] = struct{}{}
			clientsMu.Unlock()
			log.Printf("Dashboard client connected (%d total)", clientCount())
		case conn := <-Unregister:
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
			log.Printf("Dashboard client disconnected (%d total)", clientCount())
		case event := <-Broadcast:
			var stale []*websocket.Conn
			clientsMu.RLock()
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error pushing %s event to client: %v", event.Type, err)
					conn.Close()
					stale = append(stale, conn)
				}
			}
			clientsMu.RUnlock()
			if len(stale) > 0 {
				clientsMu.Lock()
				for _, conn := range stale {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish hands an event to the hub without blocking the caller; if the
// broadcast buffer is full the event is dropped, the dashboard is a
// best-effort mirror of the store.
func Publish(event Event) {
	select {
	case Broadcast <- event:
	default:
		log.Printf("⚠️ Dropping %s event, broadcast buffer full", event.Type)
	}
}

// BookingFeed is the fiber handler for /ws/bookings. The connection only
// ever receives events; inbound frames are read and discarded to keep the
// connection's control frames flowing.
var BookingFeed = websocket.New(func(conn *websocket.Conn) {
	Register <- conn
	defer func() {
		Unregister <- conn
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})

func clientCount() int {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	return len(clients)
}
