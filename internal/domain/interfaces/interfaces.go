package interfaces

import (
	"context"
	"time"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
)

// ProviderClient defines the Nuvende PIX API surface consumed by the
// application layer.
type ProviderClient interface {
	// Authenticate returns a bearer token, reusing a cached one while it is
	// still fresh.
	Authenticate(ctx context.Context) (string, error)

	// CreateCharge upserts a charge under a freshly generated txid and
	// returns the provider's record.
	CreateCharge(ctx context.Context, req *models.ChargeRequest, expirationSeconds int) (*models.Charge, error)

	// GetCharge retrieves the current state of a charge by txid.
	GetCharge(ctx context.Context, txid string) (*models.Charge, error)
}

// TokenStore is a TTL-bounded store for provider bearer tokens. Entries
// expire on their own; Set with a non-positive ttl is a no-op.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, token string, ttl time.Duration)
}

// WebSocketManager fans charge status updates out to connected clients.
type WebSocketManager interface {
	AddClient(client WebSocketClient) error
	RemoveClient(clientID string) error
	Broadcast(update *models.StatusUpdate) error
	GetClientCount() int
}

// WebSocketClient is a single subscriber connection. A client subscribed to
// a txid only receives updates for that charge; an unfiltered client
// receives everything.
type WebSocketClient interface {
	GetID() string
	TxID() string
	Send(update *models.StatusUpdate) error
	Close() error
	IsActive() bool
	HandleConnection()
}
