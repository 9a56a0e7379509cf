package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/config"
)

type Manager struct {
	clients   map[string]interfaces.WebSocketClient
	clientsMu sync.RWMutex
	config    config.WebSocketConfig
}

func NewManager(cfg config.WebSocketConfig) interfaces.WebSocketManager {
	manager := &Manager{
		clients: make(map[string]interfaces.WebSocketClient),
		config:  cfg,
	}

	go manager.cleanupInactiveClients()

	return manager
}

// AddClient registers a new subscriber connection.
func (m *Manager) AddClient(client interfaces.WebSocketClient) error {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	m.clients[client.GetID()] = client

	log.Info().
		Str("client_id", client.GetID()).
		Str("txid", client.TxID()).
		Int("total_clients", len(m.clients)).
		Msg("WebSocket client added")

	return nil
}

// RemoveClient drops a subscriber and closes its connection.
func (m *Manager) RemoveClient(clientID string) error {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	if client, exists := m.clients[clientID]; exists {
		client.Close()
		delete(m.clients, clientID)

		log.Info().
			Str("client_id", clientID).
			Int("total_clients", len(m.clients)).
			Msg("WebSocket client removed")
	}

	return nil
}

// Broadcast sends a status update to every subscriber interested in it.
// Clients subscribed to a specific txid only see that charge's updates.
func (m *Manager) Broadcast(update *models.StatusUpdate) error {
	m.clientsMu.RLock()
	clients := make([]interfaces.WebSocketClient, 0, len(m.clients))
	for _, client := range m.clients {
		if client.TxID() == "" || client.TxID() == update.TxID {
			clients = append(clients, client)
		}
	}
	m.clientsMu.RUnlock()

	var wg sync.WaitGroup
	for _, client := range clients {
		wg.Add(1)
		go func(c interfaces.WebSocketClient) {
			defer wg.Done()

			if err := c.Send(update); err != nil {
				log.Error().
					Err(err).
					Str("client_id", c.GetID()).
					Msg("Failed to send status update to WebSocket client")

				if !c.IsActive() {
					m.RemoveClient(c.GetID())
				}
			}
		}(client)
	}
	wg.Wait()

	return nil
}

// GetClientCount returns the number of connected subscribers.
func (m *Manager) GetClientCount() int {
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()

	return len(m.clients)
}

func (m *Manager) cleanupInactiveClients() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.clientsMu.Lock()
		for id, client := range m.clients {
			if !client.IsActive() {
				client.Close()
				delete(m.clients, id)
				log.Debug().Str("client_id", id).Msg("Cleaned up inactive WebSocket client")
			}
		}
		m.clientsMu.Unlock()
	}
}
