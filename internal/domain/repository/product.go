package repository

import (
	"context"

	"github.com/djolof-farm/backend/internal/domain/model"
)

// StockLedger is the single authority over product stock counters. Reserve and
// Release pair up: a cancellation returns exactly what the order reserved.
type StockLedger interface {
	// Reserve decrements stock_quantity and increments sales_count as one
	// conditional write; fails with ErrInsufficientStock when the decrement
	// would push stock below zero.
	Reserve(ctx context.Context, productID string, quantity int) error
	// Release is the inverse of Reserve. A release that would drive sales_count
	// negative fails with ErrStockInconsistent instead of clamping.
	Release(ctx context.Context, productID string, quantity int) error
	GetStock(ctx context.Context, productID string) (*model.ProductStock, error)
}
