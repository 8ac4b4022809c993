package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/domain/entities/admin"
	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

const adminSessionKey = "adminSession"

// RequireAdminAPI gates JSON endpoints. Requests without a valid session
// cookie get a 401 JSON body, matching what the admin shell's session check
// expects.
func RequireAdminAPI(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := validateCookie(c, auth)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Sesión inválida",
			})
			return
		}
		c.Set(adminSessionKey, session)
		c.Next()
	}
}

// RequireAdminPage gates HTML pages. Requests without a valid session cookie
// are redirected to the login page instead of receiving a 401.
func RequireAdminPage(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := validateCookie(c, auth)
		if !ok {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(adminSessionKey, session)
		c.Next()
	}
}

// GetAdminSession returns the session attached by the admin middleware.
func GetAdminSession(c *gin.Context) (*admin.Session, bool) {
	value, exists := c.Get(adminSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*admin.Session)
	return session, ok
}

func validateCookie(c *gin.Context, auth *services.AuthService) (*admin.Session, bool) {
	token, err := c.Cookie(config.AdminCookieName)
	if err != nil {
		return nil, false
	}
	session, err := auth.ValidateSession(token)
	if err != nil {
		return nil, false
	}
	return session, true
}
