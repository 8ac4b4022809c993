package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/http/middleware"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

// AdminHandlers serves the admin console: login flow, dashboard stats,
// debug info and filtered listings.
type AdminHandlers struct {
	authService    *services.AuthService
	adminService   *services.AdminService
	catalogService *services.CatalogService
	orderService   *services.OrderService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(authService *services.AuthService, adminService *services.AdminService, catalogService *services.CatalogService, orderService *services.OrderService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AdminHandlers {
	return &AdminHandlers{
		authService:    authService,
		adminService:   adminService,
		catalogService: catalogService,
		orderService:   orderService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// LoginPage handles GET /admin/login
func (h *AdminHandlers) LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.AdminLoginPage("")))
}

// Login handles POST /admin/login with form-encoded credentials.
func (h *AdminHandlers) Login(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_login_request")
	defer marker.Complete()

	if !h.authService.Enabled() {
		page := templates.AdminLoginPage("Error de configuración del servidor")
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(page))
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.authService.Login(username, password)
	if err != nil {
		h.logger.Auth().Warn("Admin login rejected", "username", username)
		page := templates.AdminLoginPage("Usuario o contraseña incorrectos")
		c.Data(http.StatusUnauthorized, "text/html; charset=utf-8", []byte(page))
		return
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetCookie(config.AdminCookieName, token, maxAge, "/", "", false, true)

	marker.SetSuccess(true)
	h.logger.Auth().Info("Admin login accepted", "username", username)
	c.Redirect(http.StatusFound, "/admin")
}

// Logout handles POST /admin/logout. The cookie is cleared even when the
// session was already invalid.
func (h *AdminHandlers) Logout(c *gin.Context) {
	c.SetCookie(config.AdminCookieName, "", -1, "/", "", false, true)
	h.logger.Auth().Info("Admin logout")
	c.Redirect(http.StatusFound, "/admin/login")
}

// CheckSession handles GET /api/v1/admin/check-session behind the session gate.
func (h *AdminHandlers) CheckSession(c *gin.Context) {
	session, ok := middleware.GetAdminSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Sesión inválida"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "username": session.Username})
}

// IndexPage handles GET /admin behind the page gate.
func (h *AdminHandlers) IndexPage(c *gin.Context) {
	session, _ := middleware.GetAdminSession(c)
	username := ""
	if session != nil {
		username = session.Username
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(templates.AdminIndexPage(username)))
}

// SectionPage builds the handler for a single admin module page, one route
// per module so the static /admin/modules and /admin/stats paths stay free.
func (h *AdminHandlers) SectionPage(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := templates.AdminSectionPage(module)
		if !ok {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(templates.ErrorPanel("Módulo no encontrado")))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	}
}

// ProductStats handles GET /api/v1/admin/stats/products
func (h *AdminHandlers) ProductStats(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_product_stats_request")
	defer marker.Complete()

	stats, err := h.adminService.ProductStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, stats)
}

// OrderStats handles GET /api/v1/admin/stats/orders
func (h *AdminHandlers) OrderStats(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_order_stats_request")
	defer marker.Complete()

	stats, err := h.adminService.OrderStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, stats)
}

// UserStats handles GET /api/v1/admin/stats/users
func (h *AdminHandlers) UserStats(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_user_stats_request")
	defer marker.Complete()

	stats, err := h.adminService.UserStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, stats)
}

// Debug handles GET /api/v1/admin/debug
func (h *AdminHandlers) Debug(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_debug_request")
	defer marker.Complete()

	info := h.adminService.DebugInfo()
	marker.SetSuccess(info.Error == "")
	c.JSON(http.StatusOK, info)
}

// FilterOrders handles GET /api/v1/admin/filter/orders
func (h *AdminHandlers) FilterOrders(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_filter_orders_request")
	defer marker.Complete()

	filter := &admin.OrderFilter{Estado: c.Query("estado")}
	filter.Skip, filter.Limit = pagination(c)

	if raw := c.Query("cliente_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cliente_id inválido"})
			return
		}
		filter.ClienteID = id
	}

	var err error
	if filter.FechaDesde, err = parseFechaQuery(c.Query("fecha_desde")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "fecha_desde inválida"})
		return
	}
	if filter.FechaHasta, err = parseFechaQuery(c.Query("fecha_hasta")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "fecha_hasta inválida"})
		return
	}

	pedidos, err := h.orderService.FilterOrders(filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEstado) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Estado de pedido inválido"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, pedidos)
}

// FilterProducts handles GET /api/v1/admin/filter/products
func (h *AdminHandlers) FilterProducts(c *gin.Context) {
	marker := h.perfTracker.StartOperation("admin_filter_products_request")
	defer marker.Complete()

	filter := &admin.ProductFilter{}
	filter.Skip, filter.Limit = pagination(c)

	if raw := c.Query("categoria_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "categoria_id inválido"})
			return
		}
		filter.CategoriaID = id
	}

	var ok bool
	if filter.StockMin, ok = intQuery(c, "stock_min"); !ok {
		return
	}
	if filter.StockMax, ok = intQuery(c, "stock_max"); !ok {
		return
	}
	if filter.PrecioMin, ok = floatQuery(c, "precio_min"); !ok {
		return
	}
	if filter.PrecioMax, ok = floatQuery(c, "precio_max"); !ok {
		return
	}

	productos, err := h.catalogService.FilterProducts(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, productos)
}

// parseFechaQuery accepts RFC 3339 timestamps and bare dates. A trailing Z
// is treated as UTC, matching what the admin console sends.
func parseFechaQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSuffix(raw, "Z")); err == nil {
		return &t, nil
	}
	return nil, errors.New("unparseable date")
}

func intQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": name + " inválido"})
		return nil, false
	}
	return &v, true
}

func floatQuery(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": name + " inválido"})
		return nil, false
	}
	return &v, true
}
