package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
)

// FragmentHandlers serves the HTML fragments the storefront swaps into its
// modal and admin shell.
type FragmentHandlers struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewFragmentHandlers(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *FragmentHandlers {
	return &FragmentHandlers{logger: logger, perfTracker: perfTracker}
}

func (h *FragmentHandlers) serveFragment(c *gin.Context, operation, markup string) {
	marker := h.perfTracker.StartOperation(operation)
	defer marker.Complete()

	marker.SetSuccess(true)
	h.logger.Fragment().Debug("Fragment served", "path", c.Request.URL.Path)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
}

// AccountMenu handles GET /account-menu
func (h *FragmentHandlers) AccountMenu(c *gin.Context) {
	h.serveFragment(c, "account_menu_fragment", templates.AccountMenuFragment())
}

// LoginTemplate handles GET /login-template
func (h *FragmentHandlers) LoginTemplate(c *gin.Context) {
	h.serveFragment(c, "login_fragment", templates.LoginFragment())
}

// RegisterTemplate handles GET /register-template
func (h *FragmentHandlers) RegisterTemplate(c *gin.Context) {
	h.serveFragment(c, "register_fragment", templates.RegisterFragment())
}

// AdminModule handles GET /admin/modules/:name behind the admin session gate.
func (h *FragmentHandlers) AdminModule(c *gin.Context) {
	name := c.Param("name")
	markup, ok := templates.AdminModuleFragment(name)
	if !ok {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(templates.ErrorPanel("Módulo no encontrado")))
		return
	}
	h.serveFragment(c, "admin_module_fragment", markup)
}
