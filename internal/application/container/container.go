// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/TiendoLabs/tiendo-go/internal/application/services"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/email"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/media"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/messaging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/performance"
	catalogrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/catalog"
	commercerepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/commerce"
	customerrepo "github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/customer"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/security"
	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	CatalogService  *services.CatalogService
	CustomerService *services.CustomerService
	CartService     *services.CartService
	OrderService    *services.OrderService
	PaymentService  *services.PaymentService
	ShipmentService *services.ShipmentService
	AuthService     *services.AuthService
	AdminService    *services.AdminService

	// Infrastructure
	DB               *database.Database
	StatsBroadcaster *messaging.StatsBroadcaster
	Logger           *logging.ChanneledLogger
	PerfTracker      *performance.Tracker
}

// NewContainer wires repositories, services and infrastructure against the
// shared database connection.
func NewContainer(db *database.Database, logger *logging.ChanneledLogger) *Container {
	productRepo := catalogrepo.NewProductRepository(db.Conn, logger)
	categoryRepo := catalogrepo.NewCategoryRepository(db.Conn, logger)
	clienteRepo := customerrepo.NewClienteRepository(db.Conn, logger)
	cartRepo := commercerepo.NewCartRepository(db.Conn, logger)
	orderRepo := commercerepo.NewOrderRepository(db.Conn, logger)
	paymentRepo := commercerepo.NewPaymentRepository(db.Conn, logger)
	shipmentRepo := commercerepo.NewShipmentRepository(db.Conn, logger)

	imageProcessor := media.NewImageProcessor(config.MediaDirectory)

	mailer, err := email.NewService(config.ResendAPIKey, config.EmailFrom, config.EmailFromName)
	if err != nil {
		logger.Email().Warn("Transactional email disabled", "reason", err.Error())
		mailer = nil
	}

	adminService := services.NewAdminService(db, productRepo, categoryRepo, clienteRepo, orderRepo, config.LowStockThreshold, logger)

	return &Container{
		CatalogService:  services.NewCatalogService(productRepo, categoryRepo, imageProcessor, logger),
		CustomerService: services.NewCustomerService(clienteRepo, mailer, config.StoreURL, logger),
		CartService:     services.NewCartService(cartRepo, productRepo, clienteRepo, logger),
		OrderService:    services.NewOrderService(orderRepo, productRepo, clienteRepo, logger),
		PaymentService:  services.NewPaymentService(paymentRepo, orderRepo, logger),
		ShipmentService: services.NewShipmentService(shipmentRepo, orderRepo, logger),
		AuthService:     services.NewAuthService(config.AdminUser, config.AdminPass, sessionSecret(config.JWTSecret, config.AdminUser, config.AdminPass, logger), config.AdminSessionTTL, logger),
		AdminService:    adminService,

		DB:               db,
		StatsBroadcaster: messaging.NewStatsBroadcaster(adminService, config.StatsBroadcastInterval, logger),
		Logger:           logger,
		PerfTracker:      performance.NewTracker(),
	}
}

// sessionSecret returns the configured signing secret. When admin credentials
// are set without JWT_SECRET, an ephemeral secret is generated so the console
// still works; sessions signed with it do not survive a restart.
func sessionSecret(configured, adminUser, adminPass string, logger *logging.ChanneledLogger) string {
	if configured != "" || adminUser == "" || adminPass == "" {
		return configured
	}
	generated, err := security.GenerateSecureToken(32)
	if err != nil {
		logger.Auth().Error("Session secret generation failed, admin console disabled", "error", err.Error())
		return ""
	}
	logger.Auth().Warn("JWT_SECRET not set, generated an ephemeral session secret")
	return generated
}
