package main

import (
	"log"
	"net/http"

	"forms_portal/internal/config"
	"forms_portal/internal/logger"
	"forms_portal/internal/middleware"
	"forms_portal/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Validate configuration; refuses to start without a JWT secret
	config.Load()
	middleware.InitJWT(config.JWTSecret())

	// Connect to the database
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.ServerAddr()
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
