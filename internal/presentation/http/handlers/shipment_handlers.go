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

// ShipmentHandlers contains all shipment-related HTTP handlers
type ShipmentHandlers struct {
	shipmentService *services.ShipmentService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewShipmentHandlers creates shipment handlers with injected dependencies
func NewShipmentHandlers(shipmentService *services.ShipmentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ShipmentHandlers {
	return &ShipmentHandlers{
		shipmentService: shipmentService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// CreateShipment handles POST /api/v1/envios
func (h *ShipmentHandlers) CreateShipment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("create_shipment_request")
	defer marker.Complete()

	var req commerce.EnvioCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	envio, err := h.shipmentService.CreateShipment(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownOrder):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
		case errors.Is(err, services.ErrShipmentExists):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "El pedido ya tiene un envío"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	marker.SetSuccess(true)
	h.logger.Commerce().Info("Shipment created", "id", envio.IDEnvio, "pedido", envio.IDPedido)
	c.JSON(http.StatusCreated, envio)
}

// ListShipments handles GET /api/v1/envios
func (h *ShipmentHandlers) ListShipments(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_shipments_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	envios, err := h.shipmentService.ListShipments(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, envios)
}

// GetShipment handles GET /api/v1/envios/:id
func (h *ShipmentHandlers) GetShipment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_shipment_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	envio, err := h.shipmentService.GetShipment(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if envio == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Envío no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, envio)
}

// GetShipmentByOrder handles GET /api/v1/envios/pedido/:id
func (h *ShipmentHandlers) GetShipmentByOrder(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_shipment_by_order_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	envio, err := h.shipmentService.GetShipmentByOrder(id)
	if err != nil {
		if errors.Is(err, services.ErrUnknownOrder) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Pedido no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if envio == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Envío no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, envio)
}

// UpdateShipment handles PUT /api/v1/envios/:id
func (h *ShipmentHandlers) UpdateShipment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_shipment_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req commerce.EnvioCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	envio, err := h.shipmentService.UpdateShipment(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if envio == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Envío no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, envio)
}

// DeleteShipment handles DELETE /api/v1/envios/:id
func (h *ShipmentHandlers) DeleteShipment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_shipment_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.shipmentService.DeleteShipment(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Envío no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Envío eliminado"})
}
