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

// CartHandlers contains all cart-related HTTP handlers
type CartHandlers struct {
	cartService *services.CartService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCartHandlers creates cart handlers with injected dependencies
func NewCartHandlers(cartService *services.CartService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CartHandlers {
	return &CartHandlers{
		cartService: cartService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// CreateCart handles POST /api/v1/carritos
func (h *CartHandlers) CreateCart(c *gin.Context) {
	marker := h.perfTracker.StartOperation("create_cart_request")
	defer marker.Complete()

	var req commerce.CarritoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	carrito, err := h.cartService.CreateCart(&req)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, carrito)
}

// ListCarts handles GET /api/v1/carritos
func (h *CartHandlers) ListCarts(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_carts_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	carritos, err := h.cartService.ListCarts(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, carritos)
}

// GetCart handles GET /api/v1/carritos/:id
func (h *CartHandlers) GetCart(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_cart_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	carrito, err := h.cartService.GetCart(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if carrito == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Carrito no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, carrito)
}

// ListCartsByCustomer handles GET /api/v1/carritos/cliente/:id
func (h *CartHandlers) ListCartsByCustomer(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_carts_by_customer_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	carritos, err := h.cartService.ListCartsByCustomer(id)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCustomer) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Cliente no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, carritos)
}

// GetCartLines handles GET /api/v1/carritos/:id/detalles
func (h *CartHandlers) GetCartLines(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_cart_lines_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	detalles, err := h.cartService.GetCartLines(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if detalles == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Carrito no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, detalles)
}

// AddCartLine handles POST /api/v1/carritos/:id/detalles
func (h *CartHandlers) AddCartLine(c *gin.Context) {
	marker := h.perfTracker.StartOperation("add_cart_line_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req commerce.DetalleCarritoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	detalle, err := h.cartService.AddLine(id, &req)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if detalle == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Carrito no encontrado"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Commerce().Debug("Cart line added via API", "carrito", id, "producto", req.IDProducto)
	c.JSON(http.StatusCreated, detalle)
}

// UpdateCart handles PUT /api/v1/carritos/:id
func (h *CartHandlers) UpdateCart(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_cart_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req commerce.CarritoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	carrito, err := h.cartService.UpdateCart(id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if carrito == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Carrito no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, carrito)
}

// DeleteCart handles DELETE /api/v1/carritos/:id
func (h *CartHandlers) DeleteCart(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_cart_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.cartService.DeleteCart(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Carrito no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Carrito eliminado"})
}

// cartErrorStatus maps cart service failures to HTTP statuses. Errors that
// are neither lookup misses nor line validation failures are internal.
func cartErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownCustomer), errors.Is(err, services.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidLine):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
