package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
)

// PaymentHandlers contains all payment-related HTTP handlers
type PaymentHandlers struct {
	paymentService *services.PaymentService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewPaymentHandlers creates payment handlers with injected dependencies
func NewPaymentHandlers(paymentService *services.PaymentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PaymentHandlers {
	return &PaymentHandlers{
		paymentService: paymentService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// CreatePayment handles POST /api/v1/pagos
func (h *PaymentHandlers) CreatePayment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("create_payment_request")
	defer marker.Complete()

	var req commerce.PagoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pago, err := h.paymentService.CreatePayment(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownOrder):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		case errors.Is(err, services.ErrInvalidMetodo):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Método de pago inválido"})
		case errors.Is(err, services.ErrInvalidMonto):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	marker.SetSuccess(true)
	h.logger.Commerce().Info("Payment recorded", "id", pago.IDPago, "pedido", pago.IDPedido, "monto", pago.Monto)
	c.JSON(http.StatusCreated, pago)
}

// ListPayments handles GET /api/v1/pagos
func (h *PaymentHandlers) ListPayments(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_payments_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	pagos, err := h.paymentService.ListPayments(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pagos)
}

// GetPayment handles GET /api/v1/pagos/:id
func (h *PaymentHandlers) GetPayment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_payment_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	pago, err := h.paymentService.GetPayment(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pago == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pago no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pago)
}

// ListPaymentsByOrder handles GET /api/v1/pagos/pedido/:id
func (h *PaymentHandlers) ListPaymentsByOrder(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_payments_by_order_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	pagos, err := h.paymentService.ListPaymentsByOrder(id)
	if err != nil {
		if errors.Is(err, services.ErrUnknownOrder) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pagos)
}

// UpdatePayment handles PUT /api/v1/pagos/:id
func (h *PaymentHandlers) UpdatePayment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_payment_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req commerce.PagoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pago, err := h.paymentService.UpdatePayment(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMetodo) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Método de pago inválido"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pago == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pago no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pago)
}

// DeletePayment handles DELETE /api/v1/pagos/:id
func (h *PaymentHandlers) DeletePayment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_payment_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.paymentService.DeletePayment(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pago no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Pago eliminado"})
}
