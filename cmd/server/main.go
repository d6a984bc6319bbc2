package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Startup timeouts

	"wallet_ledger/internal/api"    // Custom package for API handlers
	"wallet_ledger/internal/cache"  // Redis read cache
	"wallet_ledger/internal/config" // Custom package for configuration
	"wallet_ledger/internal/db"     // Database connection and schema
	"wallet_ledger/internal/ledger" // Ledger operations
	"wallet_ledger/internal/logger" // Logrus setup

	"github.com/gin-gonic/gin" // Gin web framework
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	log := logger.New(cfg.LogLevel, cfg.IsProd)

	// Connect to the database and create the schema if absent
	store, err := db.Open(cfg, log)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	defer db.Close(store)
	if err := db.Migrate(store); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup the optional Redis read cache
	var rc *cache.Cache
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		rc = cache.New(redisClient, cfg.CacheTTL)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Ledger: ledger.NewService(store), // Store handle injected into the ledger
		Cache:  rc,                       // nil when REDIS_ADDR is unset
		Log:    log,                      // Shared logger
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		log.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.WithField("driver", cfg.DBDriver).Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
