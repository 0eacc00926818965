package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// OrangeMoneyProvider creates web payment sessions against the Orange Money
// webpay API.
type OrangeMoneyProvider struct {
	merchantKey string
	baseURL     *url.URL
	frontendURL string
	callbackURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

type orangeWebpayRequest struct {
	MerchantKey string  `json:"merchant_key"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	ReturnURL   string  `json:"return_url"`
	CancelURL   string  `json:"cancel_url"`
	NotifURL    string  `json:"notif_url"`
	Lang        string  `json:"lang"`
	Reference   string  `json:"reference"`
}

type orangeWebpayResponse struct {
	PaymentURL   string `json:"payment_url"`
	PaymentToken string `json:"payment_token"`
}

// NewOrangeMoneyProvider creates the Orange Money client with default timeout.
func NewOrangeMoneyProvider(merchantKey, baseURL, frontendURL, callbackURL string, timeout time.Duration, logger *slog.Logger) (*OrangeMoneyProvider, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse orange money url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("orange money url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OrangeMoneyProvider{
		merchantKey: merchantKey,
		baseURL:     parsed,
		frontendURL: frontendURL,
		callbackURL: callbackURL,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

func (p *OrangeMoneyProvider) Method() model.PaymentMethod {
	return model.PaymentMethodOrangeMoney
}

// Initiate opens an Orange Money web payment. The correlation reference rides
// in the order_id field, which the provider echoes back on its webhook.
func (p *OrangeMoneyProvider) Initiate(ctx context.Context, order *model.Order, phoneNumber string) (*Session, error) {
	reference := NewReference(order.ID)

	payload := orangeWebpayRequest{
		MerchantKey: p.merchantKey,
		Currency:    "XOF",
		OrderID:     reference,
		Amount:      order.TotalAmount,
		ReturnURL:   fmt.Sprintf("%s/orders/%s/payment-success", p.frontendURL, order.ID),
		CancelURL:   fmt.Sprintf("%s/orders/%s/payment-cancel", p.frontendURL, order.ID),
		NotifURL:    p.callbackURL,
		Lang:        "fr",
		Reference:   order.ID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &GatewayError{Provider: "orange_money", Err: err}
	}

	endpoint := p.baseURL.JoinPath("webpayment")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &GatewayError{Provider: "orange_money", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Provider: "orange_money", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		p.logger.Error("orange money webpayment failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)))
		return nil, &GatewayError{Provider: "orange_money", Err: fmt.Errorf("webpayment: %s", resp.Status)}
	}

	var data orangeWebpayResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &GatewayError{Provider: "orange_money", Err: err}
	}

	return &Session{
		Reference:    reference,
		PaymentURL:   data.PaymentURL,
		SessionToken: data.PaymentToken,
	}, nil
}
