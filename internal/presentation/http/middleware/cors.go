package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

// CORSMiddleware provides the CORS configuration. The store front-end is
// served from the same origin; the permissive default mirrors the API being
// open to external storefront deployments.
func CORSMiddleware() gin.HandlerFunc {
	if config.AllowAllOrigins {
		cfg := cors.DefaultConfig()
		cfg.AllowAllOrigins = true
		cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
		cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
		return cors.New(cfg)
	}

	cfg := cors.Config{
		AllowOrigins: []string{
			"http://localhost:8000",
			"http://127.0.0.1:8000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}
	return cors.New(cfg)
}
