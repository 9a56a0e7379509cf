package chargeservice

import (
	"context"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
)

type IChargeService interface {
	// CreateCharge validates the request, creates the charge at the provider
	// and returns it with its QR image URL.
	CreateCharge(ctx context.Context, req *models.ChargeRequest) (*models.ChargeResult, error)

	// GetCharge returns the full provider record for a charge.
	GetCharge(ctx context.Context, txid string) (*models.ChargeResult, error)

	// GetChargeStatus returns the point-in-time status of a charge and pushes
	// it to WebSocket subscribers.
	GetChargeStatus(ctx context.Context, txid string) (*models.ChargeStatusResult, error)
}
