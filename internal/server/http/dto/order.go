package dto

import "time"

// OrderItemRequest is one requested line with the catalog snapshot resolved
// by the storefront.
type OrderItemRequest struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
}

// CreateOrderRequest describes checkout payload.
type CreateOrderRequest struct {
	UserID          string             `json:"user_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryMethod  string             `json:"delivery_method"`
	PaymentMethod   string             `json:"payment_method"`
	CustomerNotes   string             `json:"customer_notes"`
	Items           []OrderItemRequest `json:"items"`
}

// UpdateStatusRequest carries the fulfillment status to move an order to.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse describes one priced order line.
type OrderItemResponse struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// OrderResponse describes an order with totals and both status tracks.
type OrderResponse struct {
	ID               string              `json:"id"`
	UserID           *string             `json:"user_id,omitempty"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email,omitempty"`
	CustomerPhone    string              `json:"customer_phone"`
	DeliveryAddress  string              `json:"delivery_address,omitempty"`
	DeliveryMethod   string              `json:"delivery_method"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentStatus    string              `json:"payment_status"`
	PaymentReference *string             `json:"payment_reference,omitempty"`
	Subtotal         float64             `json:"subtotal"`
	DeliveryFee      float64             `json:"delivery_fee"`
	TotalAmount      float64             `json:"total_amount"`
	OrderStatus      string              `json:"order_status"`
	CustomerNotes    string              `json:"customer_notes,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	Items            []OrderItemResponse `json:"items"`
}
