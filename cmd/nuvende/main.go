package main

import (
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/application/chargeservice"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/infrastructure/cache"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/infrastructure/http/clients"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/server"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/server/websocket"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/config"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Logger.Level != "" {
		log = logger.NewWithConfig(cfg.Logger)
	}

	var tokenStore interfaces.TokenStore
	if cfg.Cache.Backend == "redis" {
		store := cache.NewRedisTokenStore(cfg.Redis, log)
		defer store.Close()
		tokenStore = store
	} else {
		store := cache.NewMemoryTokenStore()
		defer store.Stop()
		tokenStore = store
	}

	nuvendeClient := clients.NewNuvendeClient(cfg.Nuvende, tokenStore, log)
	wsManager := websocket.NewManager(cfg.WebSocket)

	chargeService := chargeservice.New(nuvendeClient, wsManager, log)

	srv := server.New(cfg, chargeService, wsManager, log)
	srv.Start()
}
