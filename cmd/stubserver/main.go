package main

import (
	"log"
	"os"

	"bookhub/internal/stub"
)

func main() {
	port := getEnv("PORT", ":8080")
	jwtSecret := getEnv("JWT_SECRET", "dev-secret-change-this")

	server := stub.New(jwtSecret)

	log.Printf("BookHub stub backend starting on %s", port)
	log.Printf("Seed accounts: %s / %s (password: %s)",
		stub.SeedUserEmail, stub.SeedAdminEmail, stub.SeedUserPassword)

	if err := server.Router().Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
