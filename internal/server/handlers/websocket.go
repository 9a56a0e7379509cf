package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/server/websocket"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/config"
)

// WebSocketHandler upgrades subscribers onto the charge status stream. An
// optional txid query parameter narrows the subscription to one charge.
type WebSocketHandler struct {
	wsManager  interfaces.WebSocketManager
	pingPeriod time.Duration
	upgrader   gws.Upgrader
}

func NewWebSocketHandler(wsManager interfaces.WebSocketManager, cfg config.WebSocketConfig) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:  wsManager,
		pingPeriod: cfg.PingPeriod,
		upgrader: gws.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				if !cfg.CheckOrigin {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" ||
					strings.HasPrefix(origin, "http://"+r.Host) ||
					strings.HasPrefix(origin, "https://"+r.Host)
			},
		},
	}
}

func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Failed to upgrade to WebSocket",
		})
		return
	}

	client := websocket.NewClient(conn, c.Query("txid"), h.pingPeriod)

	if err := h.wsManager.AddClient(client); err != nil {
		log.Error().Err(err).Str("client_id", client.GetID()).Msg("Failed to add WebSocket client")
		conn.Close()
		return
	}

	log.Info().Str("client_id", client.GetID()).Msg("WebSocket client connected")

	defer func() {
		h.wsManager.RemoveClient(client.GetID())
		client.Close()
		log.Info().Str("client_id", client.GetID()).Msg("WebSocket client disconnected")
	}()

	client.HandleConnection()
}
