package middleware

import (
	"fmt"
	"strconv"
	"time"

	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// Route groups with their own budget.
const (
	GroupSubmit  = "submit"
	GroupOrders  = "orders"
	GroupOps     = "operations"
	GroupBulk    = "bulk"
	GroupWallet  = "wallet"
	GroupTopUp   = "wallet_topup"
	GroupDefault = "default"
)

// DefaultRateLimitRules returns the per-group rate limits.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupSubmit:  {Limit: 30, Window: time.Minute},
		GroupOrders:  {Limit: 120, Window: time.Minute},
		GroupOps:     {Limit: 300, Window: time.Minute},
		GroupBulk:    {Limit: 10, Window: time.Minute},
		GroupWallet:  {Limit: 60, Window: time.Minute},
		GroupTopUp:   {Limit: 20, Window: time.Minute},
		GroupDefault: {Limit: 60, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Limiter errors let the request through.
func RateLimiter(limiter ports.RateLimiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.AbortError(c, apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

// extractIdentifier keys authenticated callers by subject, others by client IP.
func extractIdentifier(c *gin.Context) string {
	if id, ok := OwnerID(c); ok {
		return id.String()
	}
	return c.ClientIP()
}
