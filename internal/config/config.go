package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var jwtSecret []byte

// Load reads .env (if present) and validates required settings. The JWT
// signing secret has no default: starting with a known value would make
// every deployment forgeable.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set; refusing to start without a signing secret")
	}
	jwtSecret = []byte(secret)
}

// JWTSecret returns the validated token signing secret.
func JWTSecret() []byte {
	return jwtSecret
}

// ServerAddr returns the listen address for the HTTP server.
func ServerAddr() string {
	return getEnv("SERVER_ADDR", "0.0.0.0:8080")
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
