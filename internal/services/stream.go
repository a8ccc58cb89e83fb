package services

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const streamWriteWait = 10 * time.Second

// RegisterClient attaches a websocket connection to a user's refresh stream.
func RegisterClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	if userClients[userID] == nil {
		userClients[userID] = make(map[*websocket.Conn]bool)
	}
	userClients[userID][conn] = true
	userClientsMu.Unlock()
}

// UnregisterClient detaches a connection and drops the user's bucket when it
// empties.
func UnregisterClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	if clients, exists := userClients[userID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
	userClientsMu.Unlock()
}

// BroadcastRefresh tells every open connection of a user to refetch their
// notifications. Called after the transaction that wrote them committed.
func BroadcastRefresh(userIDs ...uint) {
	for _, userID := range userIDs {
		userClientsMu.RLock()
		clients, exists := userClients[userID]
		if !exists || len(clients) == 0 {
			userClientsMu.RUnlock()
			continue
		}

		// Copy so the lock is not held while writing to sockets
		connections := make([]*websocket.Conn, 0, len(clients))
		for conn := range clients {
			connections = append(connections, conn)
		}
		userClientsMu.RUnlock()

		for _, conn := range connections {
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				log.Printf("Failed to set write deadline for broadcast: %v", err)
				continue
			}

			err := conn.WriteJSON(map[string]string{
				"type":    "refresh",
				"message": "Notifications updated",
			})

			if err != nil {
				log.Printf("Failed to broadcast refresh to client: %v", err)
				UnregisterClient(userID, conn)
				conn.Close()
			}
		}
	}
}
