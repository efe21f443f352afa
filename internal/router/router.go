package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/arefin88/chirp/backend/internal/handlers"
	"github.com/arefin88/chirp/backend/internal/metrics"
	"github.com/arefin88/chirp/backend/internal/middleware"
	"github.com/arefin88/chirp/backend/internal/models"
	"github.com/arefin88/chirp/backend/internal/notifier"
	"github.com/arefin88/chirp/backend/internal/repositories"
	"github.com/arefin88/chirp/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(metrics.Middleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// The returned notifier must be closed on shutdown to drain pending
// notifications.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseAuthClient *auth.Client) *notifier.Notifier {
	if err := db.Postgres.AutoMigrate(&models.Notification{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and the notifier worker ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	n := notifier.New(notificationRepo, 64)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	postHandler := handlers.NewPostHandler(postRepo, userRepo, n)
	postHandler.RegisterPostRoutes(api.Group("/posts"))
	log.Println("Post routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, n)
	userHandler.RegisterUserRoutes(api.Group("/users"))
	log.Println("User routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api.Group("/notifications"))
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return n
}
