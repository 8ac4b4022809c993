package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/catalog"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
)

// CategoryHandlers contains all category-related HTTP handlers
type CategoryHandlers struct {
	catalogService *services.CatalogService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewCategoryHandlers creates category handlers with injected dependencies
func NewCategoryHandlers(catalogService *services.CatalogService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CategoryHandlers {
	return &CategoryHandlers{
		catalogService: catalogService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// CreateCategory handles POST /api/v1/categorias
func (h *CategoryHandlers) CreateCategory(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_category_request")
	defer marker.Complete()

	var req catalog.CategoriaCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	categoria, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Catalog().Info("Create category request completed", "id", categoria.IDCategoria, "duration", time.Since(start))
	c.JSON(http.StatusCreated, categoria)
}

// ListCategories handles GET /api/v1/categorias
func (h *CategoryHandlers) ListCategories(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_categories_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	categorias, err := h.catalogService.ListCategories(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, categorias)
}

// GetCategory handles GET /api/v1/categorias/:id
func (h *CategoryHandlers) GetCategory(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_category_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	categoria, err := h.catalogService.GetCategory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if categoria == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Categoría no encontrada"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, categoria)
}

// UpdateCategory handles PUT /api/v1/categorias/:id
func (h *CategoryHandlers) UpdateCategory(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_category_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req catalog.CategoriaCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	categoria, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if categoria == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Categoría no encontrada"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, categoria)
}

// DeleteCategory handles DELETE /api/v1/categorias/:id
func (h *CategoryHandlers) DeleteCategory(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_category_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteCategory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Categoría no encontrada"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Categoría eliminada"})
}
