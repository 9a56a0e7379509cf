package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/application/chargeservice"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/server/middleware"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/config"
)

type Handlers struct {
	ChargeSvc chargeservice.IChargeService
	WsManager interfaces.WebSocketManager
	Logger    zerolog.Logger
	Config    *config.Config
}

func New(chargeSvc chargeservice.IChargeService, wsManager interfaces.WebSocketManager, logger zerolog.Logger, config *config.Config) *Handlers {
	return &Handlers{
		ChargeSvc: chargeSvc,
		WsManager: wsManager,
		Logger:    logger,
		Config:    config,
	}
}

func (h *Handlers) SetupHandlers(router *gin.Engine) {
	chargeHandler := NewChargeHandler(h.ChargeSvc, h.Logger)
	wsHandler := NewWebSocketHandler(h.WsManager, h.Config.WebSocket)
	healthHandler := NewHealthHandler()

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// WebSocket status stream
	router.GET("/ws/status", wsHandler.HandleConnection)

	v1 := router.Group("/v1")
	if h.Config.Security.APIKey != "" {
		v1.Use(middleware.APIKeyAuth(h.Config.Security.APIKey))
	}
	{
		charges := v1.Group("/charges")
		{
			charges.POST("", chargeHandler.CreateCharge)
			charges.GET("/:txid", chargeHandler.GetCharge)
			charges.GET("/:txid/status", chargeHandler.GetChargeStatus)
		}
	}
}
