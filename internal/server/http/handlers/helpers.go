package handlers

import (
	"github.com/djolof-farm/backend/internal/domain/model"
	"github.com/djolof-farm/backend/internal/server/http/dto"
)

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
		})
	}
	return dto.OrderResponse{
		ID:               order.ID,
		UserID:           order.UserID,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		DeliveryAddress:  order.DeliveryAddress,
		DeliveryMethod:   string(order.DeliveryMethod),
		PaymentMethod:    string(order.PaymentMethod),
		PaymentStatus:    string(order.PaymentStatus),
		PaymentReference: order.PaymentRef,
		Subtotal:         order.Subtotal,
		DeliveryFee:      order.DeliveryFee,
		TotalAmount:      order.TotalAmount,
		OrderStatus:      string(order.OrderStatus),
		CustomerNotes:    order.CustomerNotes,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
		CompletedAt:      order.CompletedAt,
		Items:            items,
	}
}
