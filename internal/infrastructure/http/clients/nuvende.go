package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/interfaces"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/config"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/money"
)

const (
	tokenCacheKey = "nuvende_token"

	// tokenExpiryMargin is subtracted from the provider-declared expiry so a
	// token is never presented right as the provider invalidates it.
	tokenExpiryMargin = 60 * time.Second

	defaultExpiresIn = 3600

	defaultPayerRequest = "Pagamento via PIX"

	// oauthScope is the fixed scope set the credential pair is provisioned
	// for. The provider rejects grants requesting scopes outside it.
	oauthScope = "kyc.background-check.natural-person kyc.background-check.legal-person " +
		"cob.write cob.read webhooks.read webhooks.write merchants.read merchants.write " +
		"terminals.read terminals.write transactions.read transactions.write"
)

type nuvendeClient struct {
	baseURL    string
	clientID   string
	secret     string
	pixKey     string
	accountID  string
	httpClient *http.Client
	tokens     interfaces.TokenStore
	logger     zerolog.Logger
}

func NewNuvendeClient(cfg config.NuvendeConfig, tokens interfaces.TokenStore, logger zerolog.Logger) interfaces.ProviderClient {
	return &nuvendeClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		clientID:  cfg.ClientID,
		secret:    cfg.ClientSecret,
		pixKey:    cfg.PixKey,
		accountID: cfg.AccountID,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
		logger: logger.With().Str("component", "nuvende_client").Logger(),
	}
}

// Authenticate returns a bearer token for the Nuvende API, reusing the
// cached one when still fresh. Concurrent cold-cache callers may each do
// the round-trip; tokens are interchangeable, so the last write wins.
func (c *nuvendeClient) Authenticate(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Get(ctx, tokenCacheKey); ok {
		return token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", oauthScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v2/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.AuthError{Body: err.Error()}
	}

	// Credentials travel in Basic Auth only, never in the body.
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.AuthError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Msg("Nuvende rejected credential exchange")
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var grant models.TokenResponse
	if err := json.Unmarshal(body, &grant); err != nil {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// A 2xx without a token is a failure, not an empty value.
	if grant.AccessToken == "" {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	expiresIn := grant.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}

	ttl := time.Duration(expiresIn)*time.Second - tokenExpiryMargin
	c.tokens.Set(ctx, tokenCacheKey, grant.AccessToken, ttl)

	c.logger.Debug().
		Int("expires_in", expiresIn).
		Msg("Authenticated against Nuvende")

	return grant.AccessToken, nil
}

// CreateCharge upserts a charge under a fresh txid. The endpoint is keyed by
// the txid in the URL, so a colliding id would update an existing charge
// instead of failing; ids are 128-bit random, collisions are not checked.
func (c *nuvendeClient) CreateCharge(ctx context.Context, req *models.ChargeRequest, expirationSeconds int) (*models.Charge, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	txid := newTxID()

	description := req.Description
	if description == "" {
		description = defaultPayerRequest
	}

	payload := models.ChargeCreation{
		PixKey:       c.pixKey,
		PayerRequest: description,
		Calendar: models.Calendar{
			Expiration: expirationSeconds,
		},
		Amount: models.Amount{
			Original: money.Format(req.Amount),
		},
		Payer: models.Payer{
			Name: req.PayerName,
			// CPF carries omitempty: no document means no key on the wire.
			CPF: req.PayerDocument,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.ChargeCreationError{TxID: txid, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.chargeURL(txid), bytes.NewReader(body))
	if err != nil {
		return nil, &domain.ChargeCreationError{TxID: txid, Err: err}
	}
	c.setChargeHeaders(httpReq, token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.ChargeCreationError{TxID: txid, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ChargeCreationError{TxID: txid, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("txid", txid).
			Msg("Nuvende refused charge creation")
		return nil, &domain.ChargeCreationError{TxID: txid, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var charge models.Charge
	if err := json.Unmarshal(respBody, &charge); err != nil {
		return nil, &domain.ChargeCreationError{TxID: txid, Err: fmt.Errorf("decoding charge response: %w", err)}
	}
	if charge.TxID == "" {
		charge.TxID = txid
	}

	c.logger.Info().
		Str("txid", charge.TxID).
		Str("amount", payload.Amount.Original).
		Msg("Charge created")

	return &charge, nil
}

// GetCharge retrieves the current provider state of a charge. Single
// point-in-time query; polling cadence is the caller's business.
func (c *nuvendeClient) GetCharge(ctx context.Context, txid string) (*models.Charge, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chargeURL(txid), nil)
	if err != nil {
		return nil, &domain.StatusFetchError{TxID: txid, Err: err}
	}
	c.setChargeHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.StatusFetchError{TxID: txid, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.StatusFetchError{TxID: txid, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.StatusFetchError{TxID: txid, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var charge models.Charge
	if err := json.Unmarshal(body, &charge); err != nil {
		return nil, &domain.StatusFetchError{TxID: txid, Err: fmt.Errorf("decoding charge response: %w", err)}
	}
	if charge.TxID == "" {
		charge.TxID = txid
	}

	return &charge, nil
}

func (c *nuvendeClient) chargeURL(txid string) string {
	return fmt.Sprintf("%s/api/v2/cobranca/cob/%s", c.baseURL, txid)
}

func (c *nuvendeClient) setChargeHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Account-Id", c.accountID)
	req.Header.Set("Authorization", "Bearer "+token)
}

// newTxID returns a 32-character hex transaction id, as the charge endpoint
// expects in its path segment.
func newTxID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
