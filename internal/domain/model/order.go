package model

import "time"

// DeliveryMethod describes how the customer receives the order.
type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

// PaymentMethod identifies the payment channel chosen for an order.
type PaymentMethod string

const (
	PaymentMethodWave        PaymentMethod = "wave"
	PaymentMethodOrangeMoney PaymentMethod = "orange_money"
	PaymentMethodCash        PaymentMethod = "cash"
)

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus describes payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Order describes a placed purchase with its monetary totals and dual status.
type Order struct {
	ID              string
	UserID          *string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryMethod  DeliveryMethod
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	PaymentRef      *string
	Subtotal        float64
	DeliveryFee     float64
	TotalAmount     float64
	OrderStatus     OrderStatus
	CustomerNotes   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
	Items           []OrderItem
}

// OrderItem is one priced line of an order. The product name and price are
// snapshots taken at order time and never change afterwards.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductName  string
	ProductPrice float64
	Quantity     int
	Subtotal     float64
}

// OrderDraft carries the validated input used to build a new order.
type OrderDraft struct {
	UserID          *string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryMethod  DeliveryMethod
	PaymentMethod   PaymentMethod
	CustomerNotes   string
	Items           []OrderDraftItem
}

// OrderDraftItem is one requested line with the catalog price resolved by the
// caller at order time.
type OrderDraftItem struct {
	ProductID    string
	ProductName  string
	ProductPrice float64
	Quantity     int
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status *OrderStatus
	UserID *string
}
