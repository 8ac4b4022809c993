package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
)

// PageHandlers serves the storefront's full HTML pages.
type PageHandlers struct{}

func NewPageHandlers() *PageHandlers {
	return &PageHandlers{}
}

// Index handles GET /
func (h *PageHandlers) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.IndexPage()))
}

// Product handles GET /product
func (h *PageHandlers) Product(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.ProductPage()))
}

// Cart handles GET /cart
func (h *PageHandlers) Cart(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.CartPage()))
}

// User handles GET /user
func (h *PageHandlers) User(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.UserPage()))
}

// Health handles GET /health
func (h *PageHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Tiendo API is running"})
}
