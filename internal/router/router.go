package router

import (
	"log"

	"github.com/altamedia/contentdesk/backend/internal/handlers"
	"github.com/altamedia/contentdesk/backend/internal/middleware"
	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/altamedia/contentdesk/backend/internal/repositories"
	"github.com/altamedia/contentdesk/backend/internal/services"
	"github.com/altamedia/contentdesk/backend/internal/socket"
	"github.com/altamedia/contentdesk/backend/pkg/config"
	"github.com/altamedia/contentdesk/backend/pkg/crypto"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, dispatcher *socket.Dispatcher, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	codec, err := crypto.NewCodec(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("Invalid encryption key: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database("contentdesk")
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	businessRepo := repositories.NewMongoBusinessRepository(mongoDB)
	contentRepo := repositories.NewMongoContentRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	seedSuperAdmin(userRepo)

	// --- Services ---
	tagSyncer := services.NewTagSyncer(businessRepo, logger)
	contentService := services.NewContentService(
		contentRepo, businessRepo, userRepo, notificationRepo,
		dispatcher, tagSyncer, logger,
	)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiresIn, cfg.Env == "production")
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User management routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Business routes
	businessHandler := handlers.NewBusinessHandler(businessRepo, codec)
	businessHandler.RegisterBusinessRoutes(api)
	log.Println("Business routes configured.")

	// Content routes
	contentHandler := handlers.NewContentHandler(contentService)
	contentHandler.RegisterContentRoutes(api)
	log.Println("Content routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Websocket endpoint. Auth happens inside the handler since the bearer
	// credential may arrive via header, cookie or query parameter.
	wsHandler := socket.NewHandler(socketHub(dispatcher, logger), cfg.JWTSecret, logger)
	e.GET("/ws", wsHandler.ServeWS)
	log.Println("Websocket endpoint configured.")

	log.Println("All routes configured.")
}

// socketHub creates the hub and binds the dispatcher to it. Until Bind runs
// the dispatcher silently drops emissions, so HTTP handlers never observe a
// half-initialized realtime layer.
func socketHub(dispatcher *socket.Dispatcher, logger *zap.Logger) *socket.Hub {
	hub := socket.NewHub(logger)
	dispatcher.Bind(hub)
	return hub
}

// seedSuperAdmin ensures at least one superadmin account exists so a fresh
// deployment can be administered.
func seedSuperAdmin(userRepo repositories.UserRepository) {
	existing, err := userRepo.GetUsersByRole(models.RoleSuperAdmin)
	if err != nil {
		log.Printf("Super admin seed check failed: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Super123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Super admin seed failed: %v", err)
		return
	}
	admin := &models.User{
		Username: "superadmin",
		Password: string(hashed),
		Roles:    []string{models.RoleSuperAdmin},
	}
	if err := userRepo.CreateUser(admin); err != nil {
		log.Printf("Super admin seed failed: %v", err)
		return
	}
	log.Println("Seeded default super admin account.")
}
