package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/commerce"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
)

// OrderHandlers contains all order-related HTTP handlers
type OrderHandlers struct {
	orderService *services.OrderService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewOrderHandlers creates order handlers with injected dependencies
func NewOrderHandlers(orderService *services.OrderService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// CreateOrder handles POST /api/v1/pedidos
func (h *OrderHandlers) CreateOrder(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_order_request")
	defer marker.Complete()

	var req commerce.PedidoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pedido, err := h.orderService.CreateOrder(&req)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Commerce().Info("Create order request completed", "id", pedido.IDPedido, "duration", time.Since(start))
	c.JSON(http.StatusCreated, pedido)
}

// ListOrders handles GET /api/v1/pedidos
func (h *OrderHandlers) ListOrders(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_orders_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	pedidos, err := h.orderService.ListOrders(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pedidos)
}

// GetOrder handles GET /api/v1/pedidos/:id
func (h *OrderHandlers) GetOrder(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_order_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	pedido, err := h.orderService.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pedido == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pedido)
}

// ListOrdersByCustomer handles GET /api/v1/pedidos/cliente/:id
func (h *OrderHandlers) ListOrdersByCustomer(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_orders_by_customer_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	pedidos, err := h.orderService.ListOrdersByCustomer(id)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCustomer) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Cliente no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pedidos)
}

// GetOrderLines handles GET /api/v1/pedidos/:id/detalles
func (h *OrderHandlers) GetOrderLines(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_order_lines_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	pedido, err := h.orderService.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pedido == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pedido.Detalles)
}

// OrderEstadoRequest carries the state transition payload for an order.
type OrderEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// SetOrderEstado handles PATCH /api/v1/pedidos/:id/estado
func (h *OrderHandlers) SetOrderEstado(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("set_order_estado_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req OrderEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pedido, err := h.orderService.SetOrderEstado(id, req.Estado)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEstado) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Estado de pedido inválido"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pedido == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Commerce().Info("Order state request completed", "id", id, "estado", req.Estado, "duration", time.Since(start))
	c.JSON(http.StatusOK, pedido)
}

// UpdateOrder handles PUT /api/v1/pedidos/:id
func (h *OrderHandlers) UpdateOrder(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_order_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req commerce.PedidoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pedido, err := h.orderService.UpdateOrder(id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if pedido == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pedido)
}

// DeleteOrder handles DELETE /api/v1/pedidos/:id
func (h *OrderHandlers) DeleteOrder(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_order_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.orderService.DeleteOrder(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Pedido eliminado"})
}

// orderErrorStatus maps order service failures to HTTP statuses. Errors that
// are neither lookup misses nor line validation failures are internal.
func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownCustomer), errors.Is(err, services.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidLine), errors.Is(err, services.ErrInvalidEstado):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
