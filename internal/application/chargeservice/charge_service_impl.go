package chargeservice

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/qrcode"
)

const (
	defaultExpirationHours = 24
	maxExpirationHours     = 24
	secondsPerHour         = 3600
)

type chargeService struct {
	provider  interfaces.ProviderClient
	wsManager interfaces.WebSocketManager
	logger    zerolog.Logger
}

func New(provider interfaces.ProviderClient, wsManager interfaces.WebSocketManager, logger zerolog.Logger) IChargeService {
	return &chargeService{
		provider:  provider,
		wsManager: wsManager,
		logger:    logger.With().Str("component", "charge_service").Logger(),
	}
}

func (s *chargeService) CreateCharge(ctx context.Context, req *models.ChargeRequest) (*models.ChargeResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hours := req.ExpirationHours
	if hours == 0 {
		hours = defaultExpirationHours
	}

	charge, err := s.provider.CreateCharge(ctx, req, hours*secondsPerHour)
	if err != nil {
		return nil, err
	}

	return chargeResult(charge), nil
}

func (s *chargeService) GetCharge(ctx context.Context, txid string) (*models.ChargeResult, error) {
	if txid == "" {
		return nil, fmt.Errorf("%w: txid is required", domain.ErrInvalidRequest)
	}

	charge, err := s.provider.GetCharge(ctx, txid)
	if err != nil {
		return nil, err
	}

	return chargeResult(charge), nil
}

func (s *chargeService) GetChargeStatus(ctx context.Context, txid string) (*models.ChargeStatusResult, error) {
	if txid == "" {
		return nil, fmt.Errorf("%w: txid is required", domain.ErrInvalidRequest)
	}

	charge, err := s.provider.GetCharge(ctx, txid)
	if err != nil {
		return nil, err
	}

	status := charge.Status
	if status == "" {
		status = models.StatusActive
	}

	result := &models.ChargeStatusResult{
		TxID:   charge.TxID,
		Status: status,
		Charge: charge,
	}

	s.broadcastStatus(result)

	return result, nil
}

func (s *chargeService) broadcastStatus(result *models.ChargeStatusResult) {
	if s.wsManager == nil || s.wsManager.GetClientCount() == 0 {
		return
	}

	update := &models.StatusUpdate{
		Type:      "charge_status",
		TxID:      result.TxID,
		Status:    result.Status,
		Data:      result.Charge,
		Timestamp: time.Now(),
	}

	if err := s.wsManager.Broadcast(update); err != nil {
		s.logger.Warn().Err(err).Str("txid", result.TxID).Msg("Failed to broadcast status update")
	}
}

func chargeResult(charge *models.Charge) *models.ChargeResult {
	result := &models.ChargeResult{Charge: charge}
	if payload := charge.CopyPastePayload(); payload != "" {
		result.QRCodeURL = qrcode.ImageURL(payload)
	}
	return result
}

func validateRequest(req *models.ChargeRequest) error {
	switch {
	case req == nil:
		return fmt.Errorf("%w: empty request", domain.ErrInvalidRequest)
	case req.Amount <= 0:
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidRequest)
	case req.PayerName == "":
		return fmt.Errorf("%w: payer name is required", domain.ErrInvalidRequest)
	case len(req.PayerName) > 255:
		return fmt.Errorf("%w: payer name must be at most 255 characters", domain.ErrInvalidRequest)
	case len(req.PayerDocument) > 20:
		return fmt.Errorf("%w: payer document must be at most 20 characters", domain.ErrInvalidRequest)
	case len(req.Description) > 500:
		return fmt.Errorf("%w: description must be at most 500 characters", domain.ErrInvalidRequest)
	case req.ExpirationHours < 0 || req.ExpirationHours > maxExpirationHours:
		return fmt.Errorf("%w: expiration must be between 1 and %d hours", domain.ErrInvalidRequest, maxExpirationHours)
	}

	return nil
}
