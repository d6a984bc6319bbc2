package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"wallet_ledger/internal/cache"   // Redis read cache
	"wallet_ledger/internal/domain"  // Importing domain models
	"wallet_ledger/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// WalletUpdateRequest represents a wallet adjustment. Zero and negative amounts are valid.
type WalletUpdateRequest struct {
	Amount *float64 `json:"amount" binding:"required"` // Signed amount
}

// WalletBalanceResponse is returned after an adjustment
type WalletBalanceResponse struct {
	WalletBalance float64 `json:"wallet_balance"`
}

// userIDParam parses :user_id, answering 422 itself when it is not an integer.
// Integers that can never name a user (negative or out of range) map to 0,
// which the ledger reports as not found.
func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) || (err == nil && id < 0) {
		return 0, true // Well-formed integer, no such user
	}
	if err != nil {
		respondInvalid(c, []ValidationError{{
			Field:   "user_id",
			Message: "Value must be a valid integer",
			Type:    "int_parsing",
		}})
		return 0, false
	}
	return uint(id), true
}

// AdjustWalletHandler applies a signed amount to a user's wallet
func AdjustWalletHandler(svc Ledger, rc *cache.Cache, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		var req WalletUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalid(c, bindingDetails(err))
			return
		}
		amount := *req.Amount
		ctx := c.Request.Context()

		balance, err := svc.AdjustWallet(ctx, userID, amount)
		if err != nil {
			respondError(c, log, err, logrus.Fields{
				"user_id": userID, // Target user
				"amount":  amount, // Requested amount
			})
			return
		}
		txType := domain.TypeFor(amount)
		metrics.RecordWalletAdjustment(string(txType))
		// Both read endpoints show data touched by this adjustment
		if err := rc.Invalidate(ctx, cache.UsersKey, cache.TransactionsKey(userID)); err != nil {
			log.WithError(err).Warn("Failed to invalidate wallet caches")
		}
		log.WithFields(logrus.Fields{
			"user_id":        userID,  // Target user
			"amount":         amount,  // Adjustment amount
			"type":           txType,  // credit or debit
			"wallet_balance": balance, // Balance after commit
		}).Info("Wallet adjusted")
		c.JSON(http.StatusOK, WalletBalanceResponse{WalletBalance: balance})
	}
}

// TransactionsHandler returns a user's ledger entries in insertion order
func TransactionsHandler(svc Ledger, rc *cache.Cache, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		key := cache.TransactionsKey(userID)
		gen, genErr := rc.Generation(ctx, key)
		if genErr != nil {
			log.WithError(genErr).Warn("Transactions cache generation read failed")
		}

		var txs []domain.Transaction
		found, err := rc.Get(ctx, key, &txs)
		if err != nil {
			log.WithError(err).Warn("Transactions cache read failed")
		}
		if rc != nil {
			metrics.RecordCacheLookup("transactions", found)
		}
		if found {
			c.JSON(http.StatusOK, txs)
			return
		}

		txs, err = svc.Transactions(ctx, userID)
		if err != nil {
			respondError(c, log, err, logrus.Fields{"user_id": userID})
			return
		}
		if genErr == nil {
			if _, err := rc.SetIfCurrent(ctx, key, gen, txs); err != nil {
				log.WithError(err).Warn("Transactions cache write failed")
			}
		}
		c.JSON(http.StatusOK, txs)
	}
}
