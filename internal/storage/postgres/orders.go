package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/djolof-farm/backend/internal/domain/errors"
	"github.com/djolof-farm/backend/internal/domain/model"
)

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone,
        delivery_address, delivery_method, payment_method, payment_status, payment_reference,
        subtotal, delivery_fee, total_amount, order_status, customer_notes,
        created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.DeliveryAddress, &o.DeliveryMethod, &o.PaymentMethod, &o.PaymentStatus, &o.PaymentRef,
		&o.Subtotal, &o.DeliveryFee, &o.TotalAmount, &o.OrderStatus, &o.CustomerNotes,
		&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// --- stock ledger ---

// reserveStockTx is the single write path decrementing stock. The non-negativity
// check is part of the UPDATE itself so concurrent reservations serialize on the
// product row and can never jointly overdraw it.
func (s *Storage) reserveStockTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	const update = `UPDATE products
                    SET stock_quantity = stock_quantity - $2,
                        sales_count = sales_count + $2,
                        updated_at = NOW()
                    WHERE id = $1 AND stock_quantity >= $2`
	tag, err := tx.Exec(ctx, update, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("product %s: %w", productID, domainErrors.ErrNotFound)
	}
	return fmt.Errorf("product %s: %w", productID, domainErrors.ErrInsufficientStock)
}

// releaseStockTx restores what a prior reservation took. Driving sales_count
// negative would mean releasing more than was ever sold, which is reported
// rather than clamped.
func (s *Storage) releaseStockTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	const update = `UPDATE products
                    SET stock_quantity = stock_quantity + $2,
                        sales_count = sales_count - $2,
                        updated_at = NOW()
                    WHERE id = $1 AND sales_count >= $2`
	tag, err := tx.Exec(ctx, update, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("product %s: %w", productID, domainErrors.ErrNotFound)
	}
	return fmt.Errorf("product %s: %w", productID, domainErrors.ErrStockInconsistent)
}

func (l *stockLedger) Reserve(ctx context.Context, productID string, quantity int) error {
	return l.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return l.storage.reserveStockTx(ctx, tx, productID, quantity)
	})
}

func (l *stockLedger) Release(ctx context.Context, productID string, quantity int) error {
	return l.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return l.storage.releaseStockTx(ctx, tx, productID, quantity)
	})
}

func (l *stockLedger) GetStock(ctx context.Context, productID string) (*model.ProductStock, error) {
	const query = `SELECT id, stock_quantity, sales_count FROM products WHERE id=$1`
	var p model.ProductStock
	err := l.storage.pool.QueryRow(ctx, query, productID).Scan(&p.ProductID, &p.StockQuantity, &p.SalesCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// --- outbox ---

func (s *Storage) insertEventTx(ctx context.Context, tx pgx.Tx, orderID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	const insert = `INSERT INTO order_events (order_id, type, payload) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insert, orderID, eventType, data); err != nil {
		return err
	}
	return nil
}

// PendingBatch claims up to limit unpublished events. The SKIP LOCKED select
// and the claim marker keep concurrent relays (or a second instance) off the
// same rows; a claim older than the cutoff is treated as abandoned and handed
// out again, so a crashed relay only delays delivery.
func (r *eventRepository) PendingBatch(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	const selectQuery = `SELECT id, order_id, type, payload, created_at, published_at
                         FROM order_events
                         WHERE published_at IS NULL
                           AND (claimed_at IS NULL OR claimed_at < NOW() - INTERVAL '1 minute')
                         ORDER BY id
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var result []model.OrderEvent
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		for rows.Next() {
			var e model.OrderEvent
			if err := rows.Scan(&e.ID, &e.OrderID, &e.Type, &e.Payload, &e.CreatedAt, &e.PublishedAt); err != nil {
				rows.Close()
				return err
			}
			result = append(result, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, e := range result {
			if _, err := tx.Exec(ctx, `UPDATE order_events SET claimed_at=NOW() WHERE id=$1`, e.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *eventRepository) MarkPublished(ctx context.Context, eventID int64) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE order_events SET published_at=NOW() WHERE id=$1`, eventID)
	return err
}

// --- OrderRepository implementation ---

// Create persists order, items, stock decrements and the outbox record as one
// transaction: a failed reservation rolls back every earlier one, so the caller
// observes no partial order and no net stock change.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.ID = uuid.NewString()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, item := range order.Items {
			if err := r.storage.reserveStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		const insertOrder = `INSERT INTO orders (
                id, user_id, customer_name, customer_email, customer_phone,
                delivery_address, delivery_method, payment_method, payment_status,
                subtotal, delivery_fee, total_amount, order_status, customer_notes
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
            RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.ID, order.UserID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
			order.DeliveryAddress, order.DeliveryMethod, order.PaymentMethod, order.PaymentStatus,
			order.Subtotal, order.DeliveryFee, order.TotalAmount, order.OrderStatus, order.CustomerNotes,
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for i := range order.Items {
			item := &order.Items[i]
			item.ID = uuid.NewString()
			item.OrderID = order.ID
			if _, err := tx.Exec(ctx, insertItem,
				item.ID, item.OrderID, item.ProductID, item.ProductName,
				item.ProductPrice, item.Quantity, item.Subtotal,
			); err != nil {
				return err
			}
		}

		return r.storage.insertEventTx(ctx, tx, order.ID, model.EventOrderCreated, map[string]any{
			"order_id":     order.ID,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if order.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByPaymentRef(ctx context.Context, reference string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_reference=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal
                   FROM order_items WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// List filters by the allow-listed fields of OrderFilter only.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("order_status=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id=$%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) lockOrderTx(ctx context.Context, tx pgx.Tx, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	order, err := scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// TransitionStatus validates the fulfillment edge and applies it under a row
// lock, so a concurrent webhook or cancellation observes either the old or the
// new state, never a torn one.
func (r *orderRepository) TransitionStatus(ctx context.Context, id string, target model.OrderStatus) (*model.Order, error) {
	var result *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrderTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !model.CanTransitionOrder(order.OrderStatus, target) {
			return fmt.Errorf("%s -> %s: %w", order.OrderStatus, target, domainErrors.ErrInvalidTransition)
		}

		const update = `UPDATE orders
                        SET order_status=$2,
                            updated_at=NOW(),
                            completed_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE completed_at END
                        WHERE id=$1
                        RETURNING updated_at, completed_at`
		if err := tx.QueryRow(ctx, update, id, target).Scan(&order.UpdatedAt, &order.CompletedAt); err != nil {
			return err
		}
		order.OrderStatus = target

		if err := r.storage.insertEventTx(ctx, tx, id, model.EventOrderStatusChanged, map[string]any{
			"order_id": id,
			"status":   target,
		}); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel releases every reserved item and moves the order to cancelled as one
// unit, restoring stock_quantity and sales_count to their pre-order values.
func (r *orderRepository) Cancel(ctx context.Context, id string) (*model.Order, error) {
	var result *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrderTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !model.CanTransitionOrder(order.OrderStatus, model.OrderStatusCancelled) {
			return fmt.Errorf("%s -> %s: %w", order.OrderStatus, model.OrderStatusCancelled, domainErrors.ErrInvalidTransition)
		}

		const itemsQuery = `SELECT product_id, quantity FROM order_items WHERE order_id=$1`
		rows, err := tx.Query(ctx, itemsQuery, id)
		if err != nil {
			return err
		}
		type reservation struct {
			productID string
			quantity  int
		}
		var reservations []reservation
		for rows.Next() {
			var res reservation
			if err := rows.Scan(&res.productID, &res.quantity); err != nil {
				rows.Close()
				return err
			}
			reservations = append(reservations, res)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, res := range reservations {
			if err := r.storage.releaseStockTx(ctx, tx, res.productID, res.quantity); err != nil {
				return err
			}
		}

		const update = `UPDATE orders SET order_status='cancelled', updated_at=NOW() WHERE id=$1 RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, id).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		order.OrderStatus = model.OrderStatusCancelled

		if err := r.storage.insertEventTx(ctx, tx, id, model.EventOrderCancelled, map[string]any{
			"order_id": id,
		}); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetPaymentInitiated records the provider reference for a not-yet-paid order.
// The completed guard lives in the UPDATE itself: a webhook that lands during
// the provider call must not be reverted to pending by a late initiation.
func (r *orderRepository) SetPaymentInitiated(ctx context.Context, id string, method model.PaymentMethod, reference string) error {
	const update = `UPDATE orders
                    SET payment_method=$2, payment_reference=NULLIF($3, ''), payment_status='pending', updated_at=NOW()
                    WHERE id=$1 AND payment_status <> 'completed'`
	tag, err := r.storage.pool.Exec(ctx, update, id, method, reference)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrAlreadyPaid
}

// CompletePayment applies a successful confirmation exactly once. A redelivered
// event, or one racing a cancellation that already won, returns applied=false
// and changes nothing.
func (r *orderRepository) CompletePayment(ctx context.Context, id, reference string) (*model.Order, bool, error) {
	var (
		result  *model.Order
		applied bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrderTx(ctx, tx, id)
		if err != nil {
			return err
		}
		result = order

		if order.PaymentStatus == model.PaymentStatusCompleted {
			return nil
		}
		if !model.CanTransitionPayment(order.PaymentStatus, model.PaymentStatusCompleted) {
			r.storage.logger.Warn("payment confirmation not applicable",
				slog.String("order_id", id),
				slog.String("payment_status", string(order.PaymentStatus)))
			return nil
		}
		if !model.CanTransitionOrder(order.OrderStatus, model.OrderStatusConfirmed) {
			r.storage.logger.Warn("order no longer confirmable, payment confirmation dropped",
				slog.String("order_id", id),
				slog.String("order_status", string(order.OrderStatus)))
			return nil
		}

		const update = `UPDATE orders
                        SET payment_status='completed', payment_reference=$2,
                            order_status='confirmed', updated_at=NOW()
                        WHERE id=$1
                        RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, id, reference).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		order.PaymentStatus = model.PaymentStatusCompleted
		order.OrderStatus = model.OrderStatusConfirmed
		order.PaymentRef = &reference

		if err := r.storage.insertEventTx(ctx, tx, id, model.EventPaymentCompleted, map[string]any{
			"order_id":  id,
			"reference": reference,
		}); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, applied, nil
}
