package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
)

var ErrClientInactive = errors.New("client is inactive")

const defaultPingPeriod = 54 * time.Second

// Client implements the WebSocketClient interface. A non-empty txid narrows
// the subscription to a single charge.
type Client struct {
	id         string
	txid       string
	conn       *websocket.Conn
	pingPeriod time.Duration
	send       chan *models.StatusUpdate
	done       chan struct{}

	// mu guards active; Close is called concurrently by both pumps, the
	// manager and the handler during teardown.
	mu     sync.Mutex
	active bool
}

// NewClient wraps an upgraded connection and starts its pumps.
func NewClient(conn *websocket.Conn, txid string, pingPeriod time.Duration) interfaces.WebSocketClient {
	if pingPeriod <= 0 {
		pingPeriod = defaultPingPeriod
	}

	client := &Client{
		id:         uuid.New().String(),
		txid:       txid,
		conn:       conn,
		pingPeriod: pingPeriod,
		active:     true,
		send:       make(chan *models.StatusUpdate, 256),
		done:       make(chan struct{}),
	}

	go client.writePump()
	go client.readPump()

	return client
}

func (c *Client) GetID() string {
	return c.id
}

func (c *Client) TxID() string {
	return c.txid
}

// Send queues an update for delivery without blocking the broadcaster.
func (c *Client) Send(update *models.StatusUpdate) error {
	if !c.IsActive() {
		return ErrClientInactive
	}

	select {
	case c.send <- update:
		return nil
	case <-c.done:
		return ErrClientInactive
	default:
		log.Warn().Str("client_id", c.id).Msg("WebSocket client send channel full, dropping update")
		return errors.New("send channel full")
	}
}

// Close tears the connection down exactly once, no matter how many of the
// pumps, the manager and the handler race into it.
func (c *Client) Close() error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return nil
	}
	c.active = false
	close(c.done)
	c.mu.Unlock()

	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}

func (c *Client) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.active
}

// HandleConnection blocks until the connection is closed.
func (c *Client) HandleConnection() {
	defer c.Close()

	<-c.done
}

// readPump drains incoming frames; subscribers are not expected to send
// anything beyond control messages.
func (c *Client) readPump() {
	defer func() {
		c.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		select {
		case <-c.done:
			return
		default:
			_, _, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Error().Err(err).Str("client_id", c.id).Msg("Unexpected WebSocket close error")
				}
				return
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case update := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			data, err := json.Marshal(update)
			if err != nil {
				log.Error().Err(err).Str("client_id", c.id).Msg("Failed to marshal status update")
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("client_id", c.id).Msg("Failed to write WebSocket message")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
