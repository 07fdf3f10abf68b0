package handler

import (
	"time"

	"campus-access-gateway/internal/adapter/http/middleware"
	redisStore "campus-access-gateway/internal/adapter/storage/redis"
	"campus-access-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TapSvc         ports.TapService
	PolicySvc      ports.PolicyService
	ReportingSvc   ports.ReportingService
	AdminSvc       ports.AdminService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	TapRateLimit   middleware.RateLimitRule   // zero value = defaults
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	tapRL := func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil {
		rule := deps.TapRateLimit
		if rule.Limit <= 0 {
			rule.Limit = 60
		}
		if rule.Window <= 0 {
			rule.Window = time.Minute
		}
		tapRL = middleware.TapRateLimiter(deps.RateLimitStore, rule, deps.Logger)
	}

	tapHandler := NewTapHandler(deps.TapSvc)
	identityHandler := NewIdentityHandler(deps.ReportingSvc)
	transactionHandler := NewTransactionHandler(deps.ReportingSvc)
	policyHandler := NewPolicyHandler(deps.PolicySvc)
	adminHandler := NewAdminHandler(deps.AdminSvc)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/tap", tapRL, tapHandler.ProcessTap)
		v1.GET("/identities", identityHandler.ListIdentities)
		v1.GET("/identities/:card_uid", identityHandler.GetIdentity)
		v1.GET("/transactions", transactionHandler.ListTransactions)
		v1.GET("/policies", policyHandler.ListPolicies)
		v1.POST("/admin/reset-demo", adminHandler.ResetDemo)
	}

	return r
}
