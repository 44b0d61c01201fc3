package main

import (
	"log"

	"github.com/altamedia/contentdesk/backend/internal/router"
	"github.com/altamedia/contentdesk/backend/internal/socket"
	"github.com/altamedia/contentdesk/backend/pkg/config"
	"github.com/altamedia/contentdesk/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Structured logger for the realtime and service layers
	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// The dispatcher starts uninitialized; SetupRoutes binds it to the hub
	// before any HTTP traffic is served.
	dispatcher := socket.NewDispatcher(logger)

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, dispatcher, logger)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
