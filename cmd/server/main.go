package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/arefin88/chirp/backend/internal/metrics"
	"github.com/arefin88/chirp/backend/internal/router"
	"github.com/arefin88/chirp/backend/pkg/config"
	"github.com/arefin88/chirp/backend/pkg/firebase"
	"github.com/arefin88/chirp/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase when credentials are configured; local JWT auth
	// works without it.
	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set; firebase login disabled.")
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	n := router.SetupRoutes(e, cfg, db, authClient)
	defer n.Close()

	// Metrics on a separate listener
	go metrics.Serve(cfg.MetricsPort)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
