package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/djolof-farm/backend/internal/adapter/payment"
	domainErrors "github.com/djolof-farm/backend/internal/domain/errors"
	"github.com/djolof-farm/backend/internal/domain/model"
	"github.com/djolof-farm/backend/internal/server/http/dto"
	"github.com/djolof-farm/backend/internal/usecase"
)

// PaymentHandler manages payment session and gateway callback endpoints.
type PaymentHandler struct {
	facade          PaymentFacade
	allowSimulation bool
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, allowSimulation bool) *PaymentHandler {
	return &PaymentHandler{facade: facade, allowSimulation: allowSimulation}
}

// Initiate handles POST /api/payments/initiate.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	session, err := h.facade.InitiatePayment(c.Request.Context(), req.OrderID, model.PaymentMethod(req.PaymentMethod), req.PhoneNumber)
	if err != nil {
		var gatewayErr *payment.GatewayError
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, domainErrors.ErrAlreadyPaid), errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &gatewayErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentSessionResponse{
		Reference:  session.Reference,
		PaymentURL: session.PaymentURL,
		SessionID:  session.SessionToken,
		Simulation: session.Simulated,
	})
}

// WaveCallback handles POST /api/payments/wave/callback. The gateway retries
// on non-2xx responses, so processing failures are acknowledged anyway.
func (h *PaymentHandler) WaveCallback(c *gin.Context) {
	var req dto.WaveCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	event := usecase.WebhookEvent{
		Reference: req.Data.MerchantReference,
		Succeeded: req.Event == "checkout.completed" && req.Data.Status == "success",
	}
	_ = h.facade.HandlePaymentEvent(c.Request.Context(), event)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// OrangeCallback handles POST /api/payments/orange/callback.
func (h *PaymentHandler) OrangeCallback(c *gin.Context) {
	var req dto.OrangeCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	event := usecase.WebhookEvent{
		Reference: req.OrderID,
		Succeeded: req.Status == "SUCCESS",
	}
	_ = h.facade.HandlePaymentEvent(c.Request.Context(), event)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Status handles GET /api/payments/status/:order_id.
func (h *PaymentHandler) Status(c *gin.Context) {
	order, err := h.facade.PaymentStatus(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch payment status"})
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		PaymentStatus:    string(order.PaymentStatus),
		PaymentMethod:    string(order.PaymentMethod),
		PaymentReference: order.PaymentRef,
		OrderStatus:      string(order.OrderStatus),
	})
}

// SimulateSuccess handles POST /api/payments/simulate-success. Available only
// outside production.
func (h *PaymentHandler) SimulateSuccess(c *gin.Context) {
	if !h.allowSimulation {
		c.JSON(http.StatusForbidden, gin.H{"error": "not available in production"})
		return
	}

	var req dto.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	order, err := h.facade.SimulatePaymentSuccess(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to simulate payment"})
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		PaymentStatus:    string(order.PaymentStatus),
		PaymentMethod:    string(order.PaymentMethod),
		PaymentReference: order.PaymentRef,
		OrderStatus:      string(order.OrderStatus),
	})
}
