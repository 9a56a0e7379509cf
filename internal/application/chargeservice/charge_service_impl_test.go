package chargeservice

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Authenticate(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) CreateCharge(ctx context.Context, req *models.ChargeRequest, expirationSeconds int) (*models.Charge, error) {
	args := m.Called(ctx, req, expirationSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Charge), args.Error(1)
}

func (m *mockProvider) GetCharge(ctx context.Context, txid string) (*models.Charge, error) {
	args := m.Called(ctx, txid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Charge), args.Error(1)
}

type fakeWsManager struct {
	broadcasts []*models.StatusUpdate
	clients    int
}

func (f *fakeWsManager) AddClient(interfaces.WebSocketClient) error { return nil }
func (f *fakeWsManager) RemoveClient(string) error { return nil }
func (f *fakeWsManager) GetClientCount() int { return f.clients }
func (f *fakeWsManager) Broadcast(update *models.StatusUpdate) error {
	f.broadcasts = append(f.broadcasts, update)
	return nil
}

func TestCreateChargeDefaultsExpiration(t *testing.T) {
	provider := &mockProvider{}
	provider.On("CreateCharge", mock.Anything, mock.Anything, 86400).
		Return(&models.Charge{TxID: "t1", Status: models.StatusActive}, nil)

	svc := New(provider, &fakeWsManager{}, zerolog.Nop())

	result, err := svc.CreateCharge(context.Background(), &models.ChargeRequest{
		Amount:    100,
		PayerName: "João Silva",
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", result.Charge.TxID)
	provider.AssertExpectations(t)
}

func TestCreateChargeCustomExpiration(t *testing.T) {
	provider := &mockProvider{}
	provider.On("CreateCharge", mock.Anything, mock.Anything, 2*3600).
		Return(&models.Charge{TxID: "t1"}, nil)

	svc := New(provider, &fakeWsManager{}, zerolog.Nop())

	_, err := svc.CreateCharge(context.Background(), &models.ChargeRequest{
		Amount:          100,
		PayerName:       "João Silva",
		ExpirationHours: 2,
	})
	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestCreateChargeValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.ChargeRequest
	}{
		{"zero amount", &models.ChargeRequest{PayerName: "Maria"}},
		{"negative amount", &models.ChargeRequest{Amount: -5, PayerName: "Maria"}},
		{"missing payer name", &models.ChargeRequest{Amount: 10}},
		{"payer name too long", &models.ChargeRequest{Amount: 10, PayerName: strings.Repeat("a", 256)}},
		{"document too long", &models.ChargeRequest{Amount: 10, PayerName: "Maria", PayerDocument: strings.Repeat("1", 21)}},
		{"description too long", &models.ChargeRequest{Amount: 10, PayerName: "Maria", Description: strings.Repeat("x", 501)}},
		{"expiration above limit", &models.ChargeRequest{Amount: 10, PayerName: "Maria", ExpirationHours: 25}},
		{"negative expiration", &models.ChargeRequest{Amount: 10, PayerName: "Maria", ExpirationHours: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{}
			svc := New(provider, &fakeWsManager{}, zerolog.Nop())

			_, err := svc.CreateCharge(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
			provider.AssertNotCalled(t, "CreateCharge")
		})
	}
}

func TestCreateChargeAttachesQRCodeURL(t *testing.T) {
	provider := &mockProvider{}
	provider.On("CreateCharge", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Charge{TxID: "t1", QRCode: "00020126pixpayload"}, nil)

	svc := New(provider, &fakeWsManager{}, zerolog.Nop())

	result, err := svc.CreateCharge(context.Background(), &models.ChargeRequest{
		Amount:    100,
		PayerName: "Maria",
	})
	require.NoError(t, err)
	assert.Contains(t, result.QRCodeURL, "api.qrserver.com")
	assert.Contains(t, result.QRCodeURL, "00020126pixpayload")
}

func TestGetChargeRequiresTxID(t *testing.T) {
	svc := New(&mockProvider{}, &fakeWsManager{}, zerolog.Nop())

	_, err := svc.GetCharge(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestGetChargeStatusPassesStatusThrough(t *testing.T) {
	provider := &mockProvider{}
	provider.On("GetCharge", mock.Anything, "t2").
		Return(&models.Charge{TxID: "t2", Status: "CONCLUIDA"}, nil)

	svc := New(provider, &fakeWsManager{}, zerolog.Nop())

	result, err := svc.GetChargeStatus(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, models.ChargeStatus("CONCLUIDA"), result.Status)
}

func TestGetChargeStatusDefaultsToActive(t *testing.T) {
	provider := &mockProvider{}
	provider.On("GetCharge", mock.Anything, "t3").
		Return(&models.Charge{TxID: "t3"}, nil)

	svc := New(provider, &fakeWsManager{}, zerolog.Nop())

	result, err := svc.GetChargeStatus(context.Background(), "t3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, result.Status)
}

func TestGetChargeStatusBroadcasts(t *testing.T) {
	provider := &mockProvider{}
	provider.On("GetCharge", mock.Anything, "t2").
		Return(&models.Charge{TxID: "t2", Status: models.StatusCompleted}, nil)

	ws := &fakeWsManager{clients: 1}
	svc := New(provider, ws, zerolog.Nop())

	_, err := svc.GetChargeStatus(context.Background(), "t2")
	require.NoError(t, err)

	require.Len(t, ws.broadcasts, 1)
	assert.Equal(t, "charge_status", ws.broadcasts[0].Type)
	assert.Equal(t, "t2", ws.broadcasts[0].TxID)
	assert.Equal(t, models.StatusCompleted, ws.broadcasts[0].Status)
}

func TestGetChargeStatusSkipsBroadcastWithoutClients(t *testing.T) {
	provider := &mockProvider{}
	provider.On("GetCharge", mock.Anything, "t2").
		Return(&models.Charge{TxID: "t2", Status: models.StatusActive}, nil)

	ws := &fakeWsManager{clients: 0}
	svc := New(provider, ws, zerolog.Nop())

	_, err := svc.GetChargeStatus(context.Background(), "t2")
	require.NoError(t, err)
	assert.Empty(t, ws.broadcasts)
}

func TestProviderErrorsPropagate(t *testing.T) {
	provider := &mockProvider{}
	provider.On("GetCharge", mock.Anything, "t9").
		Return(nil, &domain.StatusFetchError{TxID: "t9", StatusCode: 500, Body: "boom"})

	svc := New(provider, &fakeWsManager{}, zerolog.Nop())

	_, err := svc.GetCharge(context.Background(), "t9")
	var fetchErr *domain.StatusFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "t9", fetchErr.TxID)
}
