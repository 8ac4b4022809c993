// Package handlers provides HTTP handlers for the storefront API
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
)

// ProductImageRequest carries a base64 data URL for a product image upload.
type ProductImageRequest struct {
	Imagen string `json:"imagen" binding:"required"`
}

// ProductHandlers contains all product-related HTTP handlers
type ProductHandlers struct {
	catalogService *services.CatalogService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewProductHandlers creates product handlers with injected dependencies
func NewProductHandlers(catalogService *services.CatalogService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProductHandlers {
	return &ProductHandlers{
		catalogService: catalogService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// CreateProduct handles POST /api/v1/productos
func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_product_request")
	defer marker.Complete()

	var req catalog.ProductoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	producto, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrUnknownCategory) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Catalog().Info("Create product request completed", "id", producto.IDProducto, "duration", time.Since(start))
	c.JSON(http.StatusCreated, producto)
}

// ListProducts handles GET /api/v1/productos
func (h *ProductHandlers) ListProducts(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_products_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	productos, err := h.catalogService.ListProducts(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, productos)
}

// GetProduct handles GET /api/v1/productos/:id
func (h *ProductHandlers) GetProduct(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_product_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	producto, err := h.catalogService.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if producto == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Producto no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, producto)
}

// ListProductsByCategory handles GET /api/v1/productos/categoria/:id
func (h *ProductHandlers) ListProductsByCategory(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_products_by_category_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	productos, err := h.catalogService.ListProductsByCategory(id)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Categoría no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, productos)
}

// UpdateProduct handles PUT /api/v1/productos/:id
func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("update_product_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req catalog.ProductoCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	producto, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrUnknownCategory) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if producto == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Producto no encontrado"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Catalog().Info("Update product request completed", "id", id, "duration", time.Since(start))
	c.JSON(http.StatusOK, producto)
}

// DeleteProduct handles DELETE /api/v1/productos/:id
func (h *ProductHandlers) DeleteProduct(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_product_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Producto no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}

// UploadProductImage handles POST /api/v1/admin/products/:id/image
func (h *ProductHandlers) UploadProductImage(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("upload_product_image_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	producto, err := h.catalogService.AttachProductImage(id, req.Imagen)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if producto == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Producto no encontrado"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Media().Info("Product image upload completed", "id", id, "duration", time.Since(start))
	c.JSON(http.StatusOK, producto)
}

// pagination reads the skip/limit query parameters with the API defaults.
func pagination(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	if limit > 200 {
		limit = 200
	}
	return skip, limit
}

// intParam parses a numeric path parameter, answering 400 on garbage.
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return value, true
}
