package api

import (
	"context"
	"net/http"
	"time"

	"wallet_ledger/internal/cache"
	"wallet_ledger/internal/domain"
	"wallet_ledger/internal/ledger"
	"wallet_ledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Ledger is the set of operations the HTTP layer needs. *ledger.Service implements it.
type Ledger interface {
	CreateUser(ctx context.Context, in ledger.NewUser) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	AdjustWallet(ctx context.Context, userID uint, amount float64) (float64, error)
	Transactions(ctx context.Context, userID uint) ([]domain.Transaction, error)
	Ping(ctx context.Context) error
}

// Deps are the collaborators wired into the router
type Deps struct {
	Ledger Ledger
	Cache  *cache.Cache // nil disables caching
	Log    *logrus.Logger
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(d Deps) *gin.Engine {
	registerJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.Log), middleware.Metrics())

	r.POST("/users", CreateUserHandler(d.Ledger, d.Cache, d.Log))
	r.GET("/users", ListUsersHandler(d.Ledger, d.Cache, d.Log))
	r.POST("/wallet/:user_id", AdjustWalletHandler(d.Ledger, d.Cache, d.Log))
	r.GET("/transactions/:user_id", TransactionsHandler(d.Ledger, d.Cache, d.Log))

	r.GET("/health", HealthHandler(d.Ledger))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// HealthHandler reports whether the store answers a ping
func HealthHandler(svc Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
