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

// WaveProvider creates checkout sessions against the Wave API.
type WaveProvider struct {
	apiKey      string
	baseURL     *url.URL
	frontendURL string
	callbackURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

type waveCheckoutRequest struct {
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	ErrorURL          string  `json:"error_url"`
	SuccessURL        string  `json:"success_url"`
	CustomerName      string  `json:"customer_name"`
	CustomerEmail     string  `json:"customer_email"`
	MerchantReference string  `json:"merchant_reference"`
}

type waveCheckoutResponse struct {
	ID            string `json:"id"`
	WaveLaunchURL string `json:"wave_launch_url"`
}

// NewWaveProvider creates the Wave client with default timeout.
func NewWaveProvider(apiKey, baseURL, frontendURL, callbackURL string, timeout time.Duration, logger *slog.Logger) (*WaveProvider, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse wave url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("wave url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WaveProvider{
		apiKey:      apiKey,
		baseURL:     parsed,
		frontendURL: frontendURL,
		callbackURL: callbackURL,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

func (p *WaveProvider) Method() model.PaymentMethod {
	return model.PaymentMethodWave
}

// Initiate opens a Wave checkout session carrying the order total and the
// correlation reference.
func (p *WaveProvider) Initiate(ctx context.Context, order *model.Order, phoneNumber string) (*Session, error) {
	reference := NewReference(order.ID)

	payload := waveCheckoutRequest{
		Amount:            order.TotalAmount,
		Currency:          "XOF",
		ErrorURL:          fmt.Sprintf("%s/orders/%s/payment-error", p.frontendURL, order.ID),
		SuccessURL:        fmt.Sprintf("%s/orders/%s/payment-success", p.frontendURL, order.ID),
		CustomerName:      order.CustomerName,
		CustomerEmail:     order.CustomerEmail,
		MerchantReference: reference,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &GatewayError{Provider: "wave", Err: err}
	}

	endpoint := p.baseURL.JoinPath("checkout", "sessions")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &GatewayError{Provider: "wave", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Provider: "wave", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		p.logger.Error("wave checkout failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)))
		return nil, &GatewayError{Provider: "wave", Err: fmt.Errorf("checkout session: %s", resp.Status)}
	}

	var data waveCheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &GatewayError{Provider: "wave", Err: err}
	}

	return &Session{
		Reference:    reference,
		PaymentURL:   data.WaveLaunchURL,
		SessionToken: data.ID,
	}, nil
}
