package model

// orderTransitions enumerates legal fulfillment status edges. Completed and
// cancelled have no outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// paymentTransitions enumerates legal payment status edges. Failed payments may
// be retried; refunded is terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusCompleted: {PaymentStatusRefunded},
	PaymentStatusFailed:    {PaymentStatusPending},
	PaymentStatusRefunded:  {},
}

// CanTransitionOrder reports whether the fulfillment status edge exists.
func CanTransitionOrder(from, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether the payment status edge exists.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether no outgoing fulfillment edge exists.
func IsTerminalOrderStatus(s OrderStatus) bool {
	return len(orderTransitions[s]) == 0
}

// ValidOrderStatus reports whether s belongs to the fulfillment vocabulary.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidDeliveryMethod reports whether m is a known delivery method.
func ValidDeliveryMethod(m DeliveryMethod) bool {
	return m == DeliveryMethodPickup || m == DeliveryMethodDelivery
}

// ValidPaymentMethod reports whether m is a known payment channel.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodWave, PaymentMethodOrangeMoney, PaymentMethodCash:
		return true
	}
	return false
}
