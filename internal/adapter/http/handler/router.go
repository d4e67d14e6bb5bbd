package handler

import (
	"fulfillment-ledger/internal/adapter/http/middleware"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Submissions    ports.SubmissionService
	OrderCosts     ports.OrderCostService
	Status         ports.StatusService
	Fulfillments   ports.FulfillmentService
	Wallets        ports.WalletService
	TokenSvc       ports.TokenService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        *metrics.Metrics    // nil = no HTTP metrics
	Gatherer       prometheus.Gatherer // nil = no /metrics endpoint
	MetricsPath    string
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
// The caller picks the gin mode.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.HTTPMetrics(deps.Metrics))
	r.Use(middleware.MaxBodySize(maxBody))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Gatherer != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if a limiter is configured, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			rule = rules[middleware.GroupDefault]
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	staffOnly := middleware.RequireRole(ports.RoleOperator, ports.RoleAdmin)

	v1 := r.Group("/api/v1", jwtAuth)

	// --- Merchant order routes ---
	orderHandler := NewOrderHandler(deps.Submissions, deps.OrderCosts)
	orders := v1.Group("/orders/:orderId")
	{
		orders.POST("/fulfill-via-ledger", rl(middleware.GroupSubmit), orderHandler.Submit)
		orders.GET("/fulfillment-status", rl(middleware.GroupOrders), orderHandler.Status)
		orders.POST("/sync", rl(middleware.GroupOrders), orderHandler.Sync)
		orders.PUT("/costs", rl(middleware.GroupOrders), orderHandler.UpdateCosts)
	}

	// --- Operations routes ---
	fulfillmentHandler := NewFulfillmentHandler(deps.Fulfillments, deps.Status)
	fulfillments := v1.Group("/fulfillments")
	{
		fulfillments.GET("/:id", rl(middleware.GroupOrders), fulfillmentHandler.Get)
		fulfillments.GET("", staffOnly, rl(middleware.GroupOps), fulfillmentHandler.List)
		fulfillments.POST("/bulk", staffOnly, rl(middleware.GroupBulk), fulfillmentHandler.BulkTransition)
		fulfillments.POST("/:id/status", staffOnly, rl(middleware.GroupOps), fulfillmentHandler.Transition)
		fulfillments.POST("/:id/tracking", staffOnly, rl(middleware.GroupOps), fulfillmentHandler.UpdateTracking)
		fulfillments.POST("/:id/assign", staffOnly, rl(middleware.GroupOps), fulfillmentHandler.Assign)
		fulfillments.POST("/:id/flags", staffOnly, rl(middleware.GroupOps), fulfillmentHandler.UpdateFlags)
	}

	// --- Wallet routes ---
	walletHandler := NewWalletHandler(deps.Wallets)
	wallet := v1.Group("/wallet")
	{
		wallet.GET("", rl(middleware.GroupWallet), walletHandler.GetBalance)
		wallet.GET("/entries", rl(middleware.GroupWallet), walletHandler.ListEntries)
		wallet.POST("/topup", rl(middleware.GroupTopUp), walletHandler.TopUp)
	}

	return r
}
