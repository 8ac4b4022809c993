package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/customer"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
)

// CustomerLoginRequest carries storefront login credentials.
type CustomerLoginRequest struct {
	Correo     string `json:"correo" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required"`
}

// CustomerHandlers contains all customer-related HTTP handlers
type CustomerHandlers struct {
	customerService *services.CustomerService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewCustomerHandlers creates customer handlers with injected dependencies
func NewCustomerHandlers(customerService *services.CustomerService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CustomerHandlers {
	return &CustomerHandlers{
		customerService: customerService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// CreateCustomer handles POST /api/v1/clientes. Duplicate emails answer 400.
func (h *CustomerHandlers) CreateCustomer(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_customer_request")
	defer marker.Complete()

	var req customer.ClienteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cliente, err := h.customerService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "El correo ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Customer().Info("Create customer request completed", "id", cliente.IDCliente, "duration", time.Since(start))
	c.JSON(http.StatusCreated, cliente)
}

// Login handles POST /api/v1/clientes/login. Bad credentials answer 401.
func (h *CustomerHandlers) Login(c *gin.Context) {
	marker := h.perfTracker.StartOperation("customer_login_request")
	defer marker.Complete()

	var req CustomerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.customerService.Login(req.Correo, req.Contrasena)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Correo o contraseña incorrectos"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, result)
}

// ListCustomers handles GET /api/v1/clientes
func (h *CustomerHandlers) ListCustomers(c *gin.Context) {
	marker := h.perfTracker.StartOperation("list_customers_request")
	defer marker.Complete()

	skip, limit := pagination(c)
	clientes, err := h.customerService.ListCustomers(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, clientes)
}

// GetCustomer handles GET /api/v1/clientes/:id
func (h *CustomerHandlers) GetCustomer(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_customer_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	cliente, err := h.customerService.GetCustomer(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cliente == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Cliente no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, cliente)
}

// UpdateCustomer handles PUT /api/v1/clientes/:id
func (h *CustomerHandlers) UpdateCustomer(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_customer_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req customer.ClienteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cliente, err := h.customerService.UpdateCustomer(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "El correo ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cliente == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Cliente no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, cliente)
}

// DeleteCustomer handles DELETE /api/v1/clientes/:id
func (h *CustomerHandlers) DeleteCustomer(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_customer_request")
	defer marker.Complete()

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.customerService.DeleteCustomer(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Cliente no encontrado"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminado"})
}
