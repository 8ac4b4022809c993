package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

func testAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.EnableStreaming = false
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return services.NewAuthService("admin", "secreto", "test-jwt-secret", time.Hour, logger)
}

func gatedRouter(auth *services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/gated", RequireAdminAPI(auth), func(c *gin.Context) {
		session, ok := GetAdminSession(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "username": session.Username})
	})
	r.GET("/admin/gated", RequireAdminPage(auth), func(c *gin.Context) {
		c.String(http.StatusOK, "panel")
	})
	return r
}

func sessionCookie(t *testing.T, auth *services.AuthService) *http.Cookie {
	t.Helper()
	token, err := auth.Login("admin", "secreto")
	require.NoError(t, err)
	return &http.Cookie{Name: config.AdminCookieName, Value: token}
}

func TestRequireAdminAPI_NoCookie(t *testing.T) {
	router := gatedRouter(testAuthService(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gated", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Sesión inválida")
}

func TestRequireAdminAPI_TamperedToken(t *testing.T) {
	router := gatedRouter(testAuthService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/gated", nil)
	req.AddCookie(&http.Cookie{Name: config.AdminCookieName, Value: "forged"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminAPI_ValidSession(t *testing.T) {
	auth := testAuthService(t)
	router := gatedRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/api/gated", nil)
	req.AddCookie(sessionCookie(t, auth))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

func TestRequireAdminPage_RedirectsToLogin(t *testing.T) {
	router := gatedRouter(testAuthService(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/gated", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestRequireAdminPage_ValidSession(t *testing.T) {
	auth := testAuthService(t)
	router := gatedRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/admin/gated", nil)
	req.AddCookie(sessionCookie(t, auth))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "panel", w.Body.String())
}
