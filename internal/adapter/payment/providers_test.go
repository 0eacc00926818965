package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/djolof-farm/backend/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testOrder() *model.Order {
	return &model.Order{
		ID:            "4f2c8d70-1111-4222-8333-444455556666",
		CustomerName:  "Awa Ndiaye",
		CustomerEmail: "awa@example.sn",
		TotalAmount:   4500,
	}
}

func TestWaveInitiateCreatesSession(t *testing.T) {
	var captured waveCheckoutRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(waveCheckoutResponse{
			ID:            "cs-1",
			WaveLaunchURL: "https://pay.wave.com/cs-1",
		})
	}))
	defer server.Close()

	provider, err := NewWaveProvider("key123", server.URL, "https://shop.example", "https://api.example/cb", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := testOrder()
	session, err := provider.Initiate(context.Background(), order, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Currency != "XOF" || captured.Amount != 4500 {
		t.Fatalf("unexpected checkout payload: %+v", captured)
	}
	if captured.MerchantReference != session.Reference {
		t.Fatalf("reference mismatch: payload %s session %s", captured.MerchantReference, session.Reference)
	}
	if id, ok := OrderIDFromReference(session.Reference); !ok || id != order.ID {
		t.Fatalf("session reference %s does not embed order id", session.Reference)
	}
	if session.PaymentURL != "https://pay.wave.com/cs-1" || session.SessionToken != "cs-1" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Simulated {
		t.Fatal("real provider session must not be marked simulated")
	}
}

func TestWaveInitiateGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider, err := NewWaveProvider("key123", server.URL, "https://shop.example", "https://api.example/cb", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.Initiate(context.Background(), testOrder(), "")
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if gatewayErr.Provider != "wave" {
		t.Fatalf("unexpected provider tag %s", gatewayErr.Provider)
	}
}

func TestOrangeInitiateCarriesReferenceInOrderID(t *testing.T) {
	var captured orangeWebpayRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/webpayment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(orangeWebpayResponse{
			PaymentURL:   "https://webpay.orange.sn/p1",
			PaymentToken: "tok-1",
		})
	}))
	defer server.Close()

	provider, err := NewOrangeMoneyProvider("merchant1", server.URL, "https://shop.example", "https://api.example/cb", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := testOrder()
	session, err := provider.Initiate(context.Background(), order, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.OrderID != session.Reference {
		t.Fatalf("order_id field must carry the reference: %s vs %s", captured.OrderID, session.Reference)
	}
	if captured.Reference != order.ID {
		t.Fatalf("reference field must carry the order id, got %s", captured.Reference)
	}
	if captured.NotifURL != "https://api.example/cb" {
		t.Fatalf("unexpected notif url %s", captured.NotifURL)
	}
	if session.PaymentURL != "https://webpay.orange.sn/p1" || session.SessionToken != "tok-1" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestProviderRejectsRelativeBaseURL(t *testing.T) {
	if _, err := NewWaveProvider("k", "not-a-url", "", "", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for relative wave url")
	}
	if _, err := NewOrangeMoneyProvider("k", "not-a-url", "", "", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for relative orange url")
	}
}

func TestCashInitiateIssuesNoReference(t *testing.T) {
	provider := NewCashProvider()
	session, err := provider.Initiate(context.Background(), testOrder(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Reference != "" || session.PaymentURL != "" {
		t.Fatalf("cash session must be empty, got %+v", session)
	}
}

func TestSimulationInitiate(t *testing.T) {
	provider := NewSimulationProvider(model.PaymentMethodWave, "https://shop.example")
	order := testOrder()

	session, err := provider.Initiate(context.Background(), order, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.Simulated {
		t.Fatal("expected simulated session")
	}
	if !strings.HasPrefix(session.PaymentURL, "https://shop.example/payment-simulation/wave/") {
		t.Fatalf("unexpected payment url %s", session.PaymentURL)
	}
	if !strings.HasPrefix(session.SessionToken, "sim_") {
		t.Fatalf("unexpected session token %s", session.SessionToken)
	}
	if id, ok := OrderIDFromReference(session.Reference); !ok || id != order.ID {
		t.Fatalf("simulated reference %s does not embed order id", session.Reference)
	}
}

func TestRegistryDispatchesByMethod(t *testing.T) {
	cash := NewCashProvider()
	sim := NewSimulationProvider(model.PaymentMethodWave, "https://shop.example")
	registry := NewRegistry(cash, sim)

	if p, ok := registry.Get(model.PaymentMethodCash); !ok || p != Provider(cash) {
		t.Fatal("expected cash provider")
	}
	if p, ok := registry.Get(model.PaymentMethodWave); !ok || p != Provider(sim) {
		t.Fatal("expected wave simulation provider")
	}
	if _, ok := registry.Get(model.PaymentMethodOrangeMoney); ok {
		t.Fatal("expected no orange provider")
	}
}
