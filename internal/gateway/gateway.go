// Package gateway wraps the external card payment provider. The service
// only ever hands it a charge amount and reacts to its webhook, so the
// provider stays behind one small interface.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type CreateSessionInput struct {
	Amount        float64
	Currency      string
	ReceiptEmail  string
	CustomerName  string
	Description   string
	ExpireSeconds int
}

type CheckoutSession struct {
	SessionID    string `json:"session_id"`
	CustomerID   string `json:"customer_id"`
	ClientSecret string `json:"client_secret"`
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error)
}

type httpGateway struct {
	url       string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

func NewHTTPGateway(url, secretKey string, log *zap.Logger) PaymentGateway {
	return &httpGateway{
		url:       url,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
		log:       log.With(zap.String("component", "gateway")),
	}
}

func (g *httpGateway) CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":         input.Amount,
		"currency":       input.Currency,
		"receipt_email":  input.ReceiptEmail,
		"customer_name":  input.CustomerName,
		"description":    input.Description,
		"expire_seconds": input.ExpireSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/v1/checkout/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		g.log.Error("Gateway rejected checkout session",
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	return &session, nil
}
