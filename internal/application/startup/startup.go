// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/application/container"
	schema "github.com/TiendoLabs/tiendo-go/internal/infrastructure/database"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/persistence/database"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/http/server"
	"github.com/TiendoLabs/tiendo-go/internal/presentation/templates"
	"github.com/TiendoLabs/tiendo-go/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until the
// process receives a shutdown signal.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("\033[32m" + `

  ████████╗██╗███████╗███╗   ██╗██████╗  ██████╗
  ╚══██╔══╝██║██╔════╝████╗  ██║██╔══██╗██╔═══██╗
     ██║   ██║█████╗  ██╔██╗ ██║██║  ██║██║   ██║
     ██║   ██║██╔══╝  ██║╚██╗██║██║  ██║██║   ██║
     ██║   ██║███████╗██║ ╚████║██████╔╝╚██████╔╝
     ╚═╝   ╚═╝╚══════╝╚═╝  ╚═══╝╚═════╝  ╚═════╝
` + "\033[0m")

	log.Println("Connecting to database...")
	db, err := database.New(database.DefaultConfig())
	if err != nil {
		return fmt.Errorf("database initialization failed: %w", err)
	}
	defer db.Close()
	log.Printf("✓ Database connected: %s", db.ConnectionInfo())

	log.Println("Ensuring schema...")
	tableCreator := schema.NewTableCreator()
	if err := tableCreator.CreateSchema(db.Conn); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	if err := tableCreator.SeedInitialContent(db.Conn); err != nil {
		return fmt.Errorf("initial content seeding failed: %w", err)
	}

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logger.Startup().Info("Channeled logging active")

	templates.SetLogger(logger.System())

	appContainer := container.NewContainer(db, logger)
	logger.Startup().Info("Dependency injection container created")

	if !appContainer.AuthService.Enabled() {
		logger.Startup().Warn("Admin console disabled: ADMIN_USER and ADMIN_PASS must both be set")
	}

	go appContainer.StatsBroadcaster.Run()
	logger.Startup().Info("Stats broadcaster started", "interval", config.StatsBroadcastInterval)

	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped")
	}

	logging.GetBroadcaster().Shutdown()

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
}
