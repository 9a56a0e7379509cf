package models

import "time"

// ChargeStatus is the provider-side lifecycle state of a charge. The set is
// open: values are relayed verbatim, never reinterpreted.
type ChargeStatus string

const (
	StatusActive         ChargeStatus = "ATIVA"
	StatusCompleted      ChargeStatus = "CONCLUIDA"
	StatusRemovedByPayee ChargeStatus = "REMOVIDA_PELO_USUARIO_RECEBEDOR"
	StatusRemovedByPSP   ChargeStatus = "REMOVIDA_PELO_PSP"
)

// ChargeRequest is the inbound request to create a PIX charge. Validation
// lives in the charge service, not in binding tags, so every rejected field
// travels the same error path.
type ChargeRequest struct {
	Amount          float64 `json:"amount"`
	PayerName       string  `json:"payer_name"`
	PayerDocument   string  `json:"payer_document,omitempty"`
	Description     string  `json:"description,omitempty"`
	ExpirationHours int     `json:"expiration_hours,omitempty"`
}

// Calendar carries the charge creation/expiration window. Expiration is in
// seconds from creation.
type Calendar struct {
	Creation   *time.Time `json:"criacao,omitempty"`
	Expiration int        `json:"expiracao"`
}

// Amount is the charge value breakdown. Original is a fixed two-decimal
// string, e.g. "250.00".
type Amount struct {
	Original string `json:"original"`
}

// Payer identifies who the charge is addressed to. CPF is omitted from the
// wire entirely when absent; the provider schema distinguishes a missing key
// from a null one.
type Payer struct {
	Name string `json:"nome"`
	CPF  string `json:"cpf,omitempty"`
}

// PixEvent is a settlement record attached to a charge once it is paid.
type PixEvent struct {
	EndToEndID string     `json:"endToEndId"`
	TxID       string     `json:"txid,omitempty"`
	Amount     string     `json:"valor"`
	SettledAt  *time.Time `json:"horario,omitempty"`
	PayerInfo  string     `json:"infoPagador,omitempty"`
}

// Charge is the provider's charge record. The provider is the system of
// record; this struct only relays what it returns.
type Charge struct {
	TxID         string       `json:"txid"`
	Status       ChargeStatus `json:"status"`
	Revision     int          `json:"revisao,omitempty"`
	Calendar     Calendar     `json:"calendario"`
	Amount       Amount       `json:"valor"`
	Payer        *Payer       `json:"devedor,omitempty"`
	PixKey       string       `json:"chave,omitempty"`
	PayerRequest string       `json:"solicitacaoPagador,omitempty"`
	QRCode       string       `json:"qrCode,omitempty"`
	CopyPaste    string       `json:"pixCopiaECola,omitempty"`
	Location     string       `json:"location,omitempty"`
	Pix          []PixEvent   `json:"pix,omitempty"`
}

// CopyPastePayload returns the PIX copy-paste string under whichever field
// the provider populated.
func (c *Charge) CopyPastePayload() string {
	if c.QRCode != "" {
		return c.QRCode
	}
	return c.CopyPaste
}

// ChargeCreation is the outbound payload for the charge upsert call.
type ChargeCreation struct {
	PixKey       string   `json:"chave"`
	PayerRequest string   `json:"solicitacaoPagador"`
	Calendar     Calendar `json:"calendario"`
	Amount       Amount   `json:"valor"`
	Payer        Payer    `json:"devedor"`
}

// ChargeResult is a charge enriched with the QR image URL for rendering.
type ChargeResult struct {
	Charge    *Charge `json:"charge"`
	QRCodeURL string  `json:"qr_code_url,omitempty"`
}

// ChargeStatusResult is the polling-endpoint view of a charge.
type ChargeStatusResult struct {
	TxID   string       `json:"txid"`
	Status ChargeStatus `json:"status"`
	Charge *Charge      `json:"data"`
}

// TokenResponse is the provider's OAuth2 token grant response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// StatusUpdate is a real-time charge status frame pushed to WebSocket
// subscribers.
type StatusUpdate struct {
	Type      string       `json:"type"`
	TxID      string       `json:"txid,omitempty"`
	Status    ChargeStatus `json:"status,omitempty"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
