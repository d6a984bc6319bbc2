package main

import (
	"wallet_ledger/internal/config" // Custom import path (Config)
	"wallet_ledger/internal/db"     // Custom import path (Database)
	"wallet_ledger/internal/logger" // Logrus setup
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	log := logger.New(cfg.LogLevel, cfg.IsProd)

	store, err := db.Open(cfg, log)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer db.Close(store)

	if err := db.Migrate(store); err != nil {
		log.Fatalf("%v", err)
	}
	log.Info("Migration completed.") // Log successful migration
}
