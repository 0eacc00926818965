package dto

// InitiatePaymentRequest starts a payment attempt for an existing order.
type InitiatePaymentRequest struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
	PhoneNumber   string `json:"phone_number"`
}

// PaymentSessionResponse describes the gateway session handed to the storefront.
type PaymentSessionResponse struct {
	Reference  string `json:"reference,omitempty"`
	PaymentURL string `json:"payment_url,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	Simulation bool   `json:"simulation,omitempty"`
}

// WaveCallbackRequest mirrors the wave checkout webhook payload.
type WaveCallbackRequest struct {
	Event string `json:"event"`
	Data  struct {
		Status            string `json:"status"`
		MerchantReference string `json:"merchant_reference"`
	} `json:"data"`
}

// OrangeCallbackRequest mirrors the orange money notification payload.
// The order_id field carries the merchant reference issued at initiation.
type OrangeCallbackRequest struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
	TxnID   string `json:"reference"`
}

// PaymentStatusResponse reports the reconciliation state of one order.
type PaymentStatusResponse struct {
	PaymentStatus    string  `json:"payment_status"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	OrderStatus      string  `json:"order_status"`
}

// SimulateRequest marks a simulated payment as completed.
type SimulateRequest struct {
	OrderID string `json:"order_id"`
}
