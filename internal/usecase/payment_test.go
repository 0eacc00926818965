package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/djolof-farm/backend/internal/adapter/payment"
	domainErrors "github.com/djolof-farm/backend/internal/domain/errors"
	"github.com/djolof-farm/backend/internal/domain/model"
)

type fakeProvider struct {
	method  model.PaymentMethod
	session *payment.Session
	err     error
	calls   int
}

func (p *fakeProvider) Method() model.PaymentMethod { return p.method }

func (p *fakeProvider) Initiate(context.Context, *model.Order, string) (*payment.Session, error) {
	p.calls++
	return p.session, p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func pendingOrder(id string) *model.Order {
	return &model.Order{
		ID:            id,
		PaymentMethod: model.PaymentMethodWave,
		PaymentStatus: model.PaymentStatusPending,
		OrderStatus:   model.OrderStatusPending,
	}
}

func TestPaymentInitiateRejectsCompletedPayment(t *testing.T) {
	repo := stubOrderRepository{getByIDFn: func(_ context.Context, id string) (*model.Order, error) {
		order := pendingOrder(id)
		order.PaymentStatus = model.PaymentStatusCompleted
		return order, nil
	}}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if _, err := uc.Initiate(context.Background(), "o1", model.PaymentMethodWave, ""); !errors.Is(err, domainErrors.ErrAlreadyPaid) {
		t.Fatalf("expected already paid error, got %v", err)
	}
}

func TestPaymentInitiateRejectsUnknownMethod(t *testing.T) {
	repo := stubOrderRepository{getByIDFn: func(_ context.Context, id string) (*model.Order, error) {
		return pendingOrder(id), nil
	}}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if _, err := uc.Initiate(context.Background(), "o1", "paypal", ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestPaymentInitiateRecordsReference(t *testing.T) {
	var gotID, gotRef string
	var gotMethod model.PaymentMethod
	repo := stubOrderRepository{
		getByIDFn: func(_ context.Context, id string) (*model.Order, error) {
			return pendingOrder(id), nil
		},
		setInitiatedFn: func(_ context.Context, id string, method model.PaymentMethod, reference string) error {
			gotID, gotMethod, gotRef = id, method, reference
			return nil
		},
	}
	provider := &fakeProvider{
		method:  model.PaymentMethodWave,
		session: &payment.Session{Reference: "DJOLOF_o1_123", PaymentURL: "https://pay.example/1"},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(provider), discardLogger())

	session, err := uc.Initiate(context.Background(), "o1", model.PaymentMethodWave, "+221770000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Reference != "DJOLOF_o1_123" {
		t.Fatalf("unexpected reference %s", session.Reference)
	}
	if gotID != "o1" || gotMethod != model.PaymentMethodWave || gotRef != "DJOLOF_o1_123" {
		t.Fatalf("unexpected recorded initiation: %s %s %s", gotID, gotMethod, gotRef)
	}
}

func TestPaymentInitiateLosesRaceToConfirmation(t *testing.T) {
	// The order is pending when initiation starts; a webhook completes the
	// payment while the provider call is in flight. Recording the session
	// must fail rather than drag payment_status back to pending.
	repo := stubOrderRepository{
		getByIDFn: func(_ context.Context, id string) (*model.Order, error) {
			return pendingOrder(id), nil
		},
		setInitiatedFn: func(context.Context, string, model.PaymentMethod, string) error {
			return domainErrors.ErrAlreadyPaid
		},
	}
	provider := &fakeProvider{
		method:  model.PaymentMethodWave,
		session: &payment.Session{Reference: "DJOLOF_o1_456", PaymentURL: "https://pay.example/2"},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(provider), discardLogger())

	session, err := uc.Initiate(context.Background(), "o1", model.PaymentMethodWave, "")
	if !errors.Is(err, domainErrors.ErrAlreadyPaid) {
		t.Fatalf("expected already paid error, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session, got %+v", session)
	}
}

func TestPaymentInitiateProviderFailureLeavesOrderUntouched(t *testing.T) {
	repo := stubOrderRepository{
		getByIDFn: func(_ context.Context, id string) (*model.Order, error) {
			return pendingOrder(id), nil
		},
		setInitiatedFn: func(context.Context, string, model.PaymentMethod, string) error {
			t.Fatal("initiation should not be recorded on provider failure")
			return nil
		},
	}
	provider := &fakeProvider{
		method: model.PaymentMethodWave,
		err:    &payment.GatewayError{Provider: "wave", Err: errors.New("timeout")},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(provider), discardLogger())

	_, err := uc.Initiate(context.Background(), "o1", model.PaymentMethodWave, "")
	var gatewayErr *payment.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestHandleEventAbsorbsUnresolvableReference(t *testing.T) {
	repo := stubOrderRepository{
		getByPaymentRefFn: func(context.Context, string) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		},
		getByIDFn: func(context.Context, string) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		},
		completeFn: func(context.Context, string, string) (*model.Order, bool, error) {
			t.Fatal("complete should not be called")
			return nil, false, nil
		},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if err := uc.HandleEvent(context.Background(), WebhookEvent{Reference: "DJOLOF_ghost_1", Succeeded: true}); err != nil {
		t.Fatalf("unresolvable reference must be absorbed, got %v", err)
	}
	if err := uc.HandleEvent(context.Background(), WebhookEvent{Reference: "garbage", Succeeded: true}); err != nil {
		t.Fatalf("malformed reference must be absorbed, got %v", err)
	}
}

func TestHandleEventIgnoresNonSuccess(t *testing.T) {
	repo := stubOrderRepository{completeFn: func(context.Context, string, string) (*model.Order, bool, error) {
		t.Fatal("complete should not be called for non-success events")
		return nil, false, nil
	}}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if err := uc.HandleEvent(context.Background(), WebhookEvent{Reference: "DJOLOF_o1_1", Succeeded: false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.HandleEvent(context.Background(), WebhookEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleEventCompletesByStoredReference(t *testing.T) {
	var completedID string
	repo := stubOrderRepository{
		getByPaymentRefFn: func(_ context.Context, reference string) (*model.Order, error) {
			if reference != "DJOLOF_o1_42" {
				t.Fatalf("unexpected reference lookup %s", reference)
			}
			return pendingOrder("o1"), nil
		},
		completeFn: func(_ context.Context, id, reference string) (*model.Order, bool, error) {
			completedID = id
			order := pendingOrder(id)
			order.PaymentStatus = model.PaymentStatusCompleted
			order.OrderStatus = model.OrderStatusConfirmed
			order.PaymentRef = &reference
			return order, true, nil
		},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if err := uc.HandleEvent(context.Background(), WebhookEvent{Reference: "DJOLOF_o1_42", Succeeded: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completedID != "o1" {
		t.Fatalf("expected o1 to be completed, got %q", completedID)
	}
}

func TestHandleEventFallsBackToEmbeddedOrderID(t *testing.T) {
	repo := stubOrderRepository{
		getByPaymentRefFn: func(context.Context, string) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		},
		getByIDFn: func(_ context.Context, id string) (*model.Order, error) {
			if id != "o7" {
				t.Fatalf("unexpected fallback id %s", id)
			}
			return pendingOrder(id), nil
		},
		completeFn: func(_ context.Context, id, _ string) (*model.Order, bool, error) {
			return pendingOrder(id), true, nil
		},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if err := uc.HandleEvent(context.Background(), WebhookEvent{Reference: "DJOLOF_o7_99", Succeeded: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleEventRedeliveryIsNoOp(t *testing.T) {
	calls := 0
	repo := stubOrderRepository{
		getByPaymentRefFn: func(_ context.Context, reference string) (*model.Order, error) {
			order := pendingOrder("o1")
			order.PaymentRef = &reference
			return order, nil
		},
		completeFn: func(_ context.Context, id, _ string) (*model.Order, bool, error) {
			calls++
			order := pendingOrder(id)
			order.PaymentStatus = model.PaymentStatusCompleted
			return order, calls == 1, nil
		},
	}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	for i := 0; i < 2; i++ {
		if err := uc.HandleEvent(context.Background(), WebhookEvent{Reference: "DJOLOF_o1_42", Succeeded: true}); err != nil {
			t.Fatalf("unexpected error on delivery %d: %v", i+1, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected complete to be attempted twice, got %d", calls)
	}
}

func TestSimulateSuccessUnknownOrder(t *testing.T) {
	repo := stubOrderRepository{getByIDFn: func(context.Context, string) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}
	uc := NewPaymentUseCase(repo, payment.NewRegistry(), discardLogger())

	if _, err := uc.SimulateSuccess(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
