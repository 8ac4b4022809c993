// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/container"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/http/handlers"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/http/middleware"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded product images and storefront assets.
	r.Static("/media", config.MediaDirectory)
	r.Static("/static", "web/static")

	productHandlers := handlers.NewProductHandlers(c.CatalogService, c.Logger, c.PerfTracker)
	categoryHandlers := handlers.NewCategoryHandlers(c.CatalogService, c.Logger, c.PerfTracker)
	customerHandlers := handlers.NewCustomerHandlers(c.CustomerService, c.Logger, c.PerfTracker)
	cartHandlers := handlers.NewCartHandlers(c.CartService, c.Logger, c.PerfTracker)
	orderHandlers := handlers.NewOrderHandlers(c.OrderService, c.Logger, c.PerfTracker)
	paymentHandlers := handlers.NewPaymentHandlers(c.PaymentService, c.Logger, c.PerfTracker)
	shipmentHandlers := handlers.NewShipmentHandlers(c.ShipmentService, c.Logger, c.PerfTracker)
	adminHandlers := handlers.NewAdminHandlers(c.AuthService, c.AdminService, c.CatalogService, c.OrderService, c.Logger, c.PerfTracker)
	fragmentHandlers := handlers.NewFragmentHandlers(c.Logger, c.PerfTracker)
	pageHandlers := handlers.NewPageHandlers()
	statsStreamHandlers := handlers.NewStatsStreamHandlers(c.StatsBroadcaster, c.Logger)
	logHandlers := handlers.NewLogHandlers(c.Logger)

	// Storefront pages and modal fragments
	r.GET("/health", pageHandlers.Health)
	r.GET("/", pageHandlers.Index)
	r.GET("/product", pageHandlers.Product)
	r.GET("/cart", pageHandlers.Cart)
	r.GET("/user", pageHandlers.User)
	r.GET("/account-menu", fragmentHandlers.AccountMenu)
	r.GET("/login-template", fragmentHandlers.LoginTemplate)
	r.GET("/register-template", fragmentHandlers.RegisterTemplate)

	// Admin console pages
	r.GET("/admin/login", adminHandlers.LoginPage)
	r.POST("/admin/login", adminHandlers.Login)
	r.POST("/admin/logout", adminHandlers.Logout)

	adminPages := r.Group("/admin")
	adminPages.Use(middleware.RequireAdminPage(c.AuthService))
	{
		adminPages.GET("", adminHandlers.IndexPage)
		for _, module := range templates.AdminModuleNames() {
			adminPages.GET("/"+module, adminHandlers.SectionPage(module))
		}
		adminPages.GET("/products/add", adminHandlers.SectionPage("products"))
		adminPages.GET("/categories/add", adminHandlers.SectionPage("categories"))
		adminPages.GET("/orders/pending", adminHandlers.SectionPage("orders"))
		adminPages.GET("/users/activity", adminHandlers.SectionPage("users"))
	}

	// Admin fragments and streams sit behind the API gate: the shell fetches
	// them and reacts to 401 itself instead of following a redirect.
	adminShell := r.Group("/admin")
	adminShell.Use(middleware.RequireAdminAPI(c.AuthService))
	{
		adminShell.GET("/modules/:name", fragmentHandlers.AdminModule)
		adminShell.GET("/stats/stream", statsStreamHandlers.Stream)
	}

	api := r.Group("/api/v1")
	{
		productos := api.Group("/productos")
		{
			productos.POST("", productHandlers.CreateProduct)
			productos.GET("", productHandlers.ListProducts)
			productos.GET("/:id", productHandlers.GetProduct)
			productos.GET("/categoria/:id", productHandlers.ListProductsByCategory)
			productos.PUT("/:id", productHandlers.UpdateProduct)
			productos.DELETE("/:id", productHandlers.DeleteProduct)
		}

		categorias := api.Group("/categorias")
		{
			categorias.POST("", categoryHandlers.CreateCategory)
			categorias.GET("", categoryHandlers.ListCategories)
			categorias.GET("/:id", categoryHandlers.GetCategory)
			categorias.PUT("/:id", categoryHandlers.UpdateCategory)
			categorias.DELETE("/:id", categoryHandlers.DeleteCategory)
		}

		clientes := api.Group("/clientes")
		{
			clientes.POST("", customerHandlers.CreateCustomer)
			clientes.POST("/login", customerHandlers.Login)
			clientes.GET("", customerHandlers.ListCustomers)
			clientes.GET("/:id", customerHandlers.GetCustomer)
			clientes.PUT("/:id", customerHandlers.UpdateCustomer)
			clientes.DELETE("/:id", customerHandlers.DeleteCustomer)
		}

		carritos := api.Group("/carritos")
		{
			carritos.POST("", cartHandlers.CreateCart)
			carritos.GET("", cartHandlers.ListCarts)
			carritos.GET("/:id", cartHandlers.GetCart)
			carritos.GET("/cliente/:id", cartHandlers.ListCartsByCustomer)
			carritos.GET("/:id/detalles", cartHandlers.GetCartLines)
			carritos.POST("/:id/detalles", cartHandlers.AddCartLine)
			carritos.PUT("/:id", cartHandlers.UpdateCart)
			carritos.DELETE("/:id", cartHandlers.DeleteCart)
		}

		pedidos := api.Group("/pedidos")
		{
			pedidos.POST("", orderHandlers.CreateOrder)
			pedidos.GET("", orderHandlers.ListOrders)
			pedidos.GET("/:id", orderHandlers.GetOrder)
			pedidos.GET("/cliente/:id", orderHandlers.ListOrdersByCustomer)
			pedidos.GET("/:id/detalles", orderHandlers.GetOrderLines)
			pedidos.PATCH("/:id/estado", orderHandlers.SetOrderEstado)
			pedidos.PUT("/:id", orderHandlers.UpdateOrder)
			pedidos.DELETE("/:id", orderHandlers.DeleteOrder)
		}

		pagos := api.Group("/pagos")
		{
			pagos.POST("", paymentHandlers.CreatePayment)
			pagos.GET("", paymentHandlers.ListPayments)
			pagos.GET("/:id", paymentHandlers.GetPayment)
			pagos.GET("/pedido/:id", paymentHandlers.ListPaymentsByOrder)
			pagos.PUT("/:id", paymentHandlers.UpdatePayment)
			pagos.DELETE("/:id", paymentHandlers.DeletePayment)
		}

		envios := api.Group("/envios")
		{
			envios.POST("", shipmentHandlers.CreateShipment)
			envios.GET("", shipmentHandlers.ListShipments)
			envios.GET("/:id", shipmentHandlers.GetShipment)
			envios.GET("/pedido/:id", shipmentHandlers.GetShipmentByOrder)
			envios.PUT("/:id", shipmentHandlers.UpdateShipment)
			envios.DELETE("/:id", shipmentHandlers.DeleteShipment)
		}

		adminAPI := api.Group("/admin")
		adminAPI.Use(middleware.RequireAdminAPI(c.AuthService))
		{
			adminAPI.GET("/check-session", adminHandlers.CheckSession)
			adminAPI.GET("/stats/products", adminHandlers.ProductStats)
			adminAPI.GET("/stats/orders", adminHandlers.OrderStats)
			adminAPI.GET("/stats/users", adminHandlers.UserStats)
			adminAPI.GET("/debug", adminHandlers.Debug)
			adminAPI.GET("/filter/orders", adminHandlers.FilterOrders)
			adminAPI.GET("/filter/products", adminHandlers.FilterProducts)
			adminAPI.POST("/products/:id/image", productHandlers.UploadProductImage)

			adminAPI.GET("/logs/stream", logHandlers.StreamLogs)
			adminAPI.GET("/logs/levels", logHandlers.GetLogLevels)
			adminAPI.POST("/logs/levels", logHandlers.SetLogLevel)
		}
	}

	return r
}
