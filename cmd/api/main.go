package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/shop-admin/internal/api"
	"github.com/example/shop-admin/internal/auth"
	"github.com/example/shop-admin/internal/authz"
	"github.com/example/shop-admin/internal/dashboard"
	"github.com/example/shop-admin/internal/infrastructure/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("[API] No .env file found. Proceeding with environment variables.")
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DB", "storefront")
	addr := getEnv("ADDR", ":8080")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] Storefront Admin Dashboard")
	log.Println("[API] ========================================")
	log.Printf("[API] Document store: %s/%s", mongoURI, mongoDB)

	client, err := store.Connect(ctx, mongoURI)
	if err != nil {
		log.Fatalf("[API] Failed to connect to document store: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("[API] Error disconnecting from document store: %v", err)
		}
	}()
	log.Println("[API] Connected to document store")

	docStore := store.NewMongoStore(client.Database(mongoDB))
	dashboardSvc := dashboard.NewService(docStore)

	jwtService := auth.NewJWTService(jwtSecret, 12*time.Hour)
	policy := authz.DefaultPolicy()

	handlers := api.NewHandlers(docStore, dashboardSvc)
	authHandlers := api.NewAuthHandlers(docStore, jwtService)
	router := api.NewRouter(api.RouterConfig{
		Handlers:     handlers,
		AuthHandlers: authHandlers,
		JWTService:   jwtService,
		Policy:       policy,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
