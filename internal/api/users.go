package api

import (
	"net/http" // HTTP status codes

	"wallet_ledger/internal/cache"   // Redis read cache
	"wallet_ledger/internal/domain"  // Importing domain models
	"wallet_ledger/internal/ledger"  // Ledger operations
	"wallet_ledger/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateUserRequest represents a registration request
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`  // Display name
	Email string `json:"email" binding:"required"` // Must be unique
	Phone string `json:"phone" binding:"required"` // Phone number
}

// CreateUserHandler registers a user with an empty wallet
func CreateUserHandler(svc Ledger, rc *cache.Cache, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalid(c, bindingDetails(err))
			return
		}
		ctx := c.Request.Context()
		user, err := svc.CreateUser(ctx, ledger.NewUser{Name: req.Name, Email: req.Email, Phone: req.Phone})
		if err != nil {
			respondError(c, log, err, logrus.Fields{"email": req.Email})
			return
		}
		metrics.RecordUserCreated()
		if err := rc.Invalidate(ctx, cache.UsersKey); err != nil {
			log.WithError(err).Warn("Failed to invalidate users cache")
		}
		log.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Registered email
		}).Info("User created")
		c.JSON(http.StatusOK, user)
	}
}

// ListUsersHandler returns every user with its wallet balance
func ListUsersHandler(svc Ledger, rc *cache.Cache, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		// Taken before the store read so a write committed meanwhile fences out our snapshot
		gen, genErr := rc.Generation(ctx, cache.UsersKey)
		if genErr != nil {
			log.WithError(genErr).Warn("Users cache generation read failed")
		}
		var users []domain.User
		found, err := rc.Get(ctx, cache.UsersKey, &users)
		if err != nil {
			log.WithError(err).Warn("Users cache read failed")
		}
		if rc != nil {
			metrics.RecordCacheLookup("users", found)
		}
		if found {
			c.JSON(http.StatusOK, users)
			return
		}

		users, err = svc.ListUsers(ctx)
		if err != nil {
			respondError(c, log, err, logrus.Fields{})
			return
		}
		if genErr == nil {
			if _, err := rc.SetIfCurrent(ctx, cache.UsersKey, gen, users); err != nil {
				log.WithError(err).Warn("Users cache write failed")
			}
		}
		c.JSON(http.StatusOK, users)
	}
}
