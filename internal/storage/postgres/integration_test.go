//go:build integration

package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/djolof-farm/backend/internal/domain/errors"
	"github.com/djolof-farm/backend/internal/domain/model"
)

func newIntegrationStorage(t *testing.T) *Storage {
	t.Helper()
	dsn := os.Getenv("DATABASE_URI")
	if dsn == "" {
		t.Skip("DATABASE_URI not set")
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage, err := New(context.Background(), dsn, logger)
	if err != nil {
		t.Fatalf("connect storage: %v", err)
	}
	t.Cleanup(storage.Close)
	return storage
}

func seedProduct(t *testing.T, storage *Storage, stock int) string {
	t.Helper()
	id := uuid.NewString()
	const insert = `INSERT INTO products (id, name, price, stock_quantity) VALUES ($1, $2, $3, $4)`
	if _, err := storage.pool.Exec(context.Background(), insert, id, "Mangoes", 1500.0, stock); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return id
}

func orderFor(productID string, quantity int) *model.Order {
	price := 1500.0
	subtotal := price * float64(quantity)
	return &model.Order{
		CustomerName:   "Awa Ndiaye",
		CustomerPhone:  "+221771234567",
		DeliveryMethod: model.DeliveryMethodPickup,
		PaymentMethod:  model.PaymentMethodCash,
		PaymentStatus:  model.PaymentStatusPending,
		OrderStatus:    model.OrderStatusPending,
		Subtotal:       subtotal,
		TotalAmount:    subtotal,
		Items: []model.OrderItem{{
			ProductID:    productID,
			ProductName:  "Mangoes",
			ProductPrice: price,
			Quantity:     quantity,
			Subtotal:     subtotal,
		}},
	}
}

// N concurrent single-unit orders against stock N-1 must yield exactly one
// insufficient-stock failure and leave the counter at zero.
func TestConcurrentReservationsNeverOverdraw(t *testing.T) {
	storage := newIntegrationStorage(t)

	const n = 8
	productID := seedProduct(t, storage, n-1)

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storage.Orders().Create(context.Background(), orderFor(productID, 1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != n-1 || insufficient != 1 {
		t.Fatalf("expected %d successes and 1 insufficient-stock failure, got %d/%d", n-1, succeeded, insufficient)
	}

	stock, err := storage.Stock().GetStock(context.Background(), productID)
	if err != nil {
		t.Fatalf("read stock: %v", err)
	}
	if stock.StockQuantity != 0 || stock.SalesCount != n-1 {
		t.Fatalf("unexpected final counters %+v", stock)
	}
}

// Creating then cancelling an order restores stock_quantity and sales_count
// to their pre-order values.
func TestCreateThenCancelRestoresCounters(t *testing.T) {
	storage := newIntegrationStorage(t)

	productID := seedProduct(t, storage, 5)

	order, err := storage.Orders().Create(context.Background(), orderFor(productID, 2))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := storage.Orders().Cancel(context.Background(), order.ID); err != nil {
		t.Fatalf("cancel order: %v", err)
	}

	stock, err := storage.Stock().GetStock(context.Background(), productID)
	if err != nil {
		t.Fatalf("read stock: %v", err)
	}
	if stock.StockQuantity != 5 || stock.SalesCount != 0 {
		t.Fatalf("unexpected counters after cancel %+v", stock)
	}
}
