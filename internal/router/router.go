package router

import (
	"fmt"
	"strings"

	"github.com/partnerconnector/internal/cache"
	"github.com/partnerconnector/internal/config"
	adminhandlers "github.com/partnerconnector/internal/http/handlers/admin"
	partnerhandlers "github.com/partnerconnector/internal/http/handlers/partner"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes onto a gin engine.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	partnerHandler := partnerhandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pc"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Partner auth
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", partnerHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), partnerHandler.Login)
		}

		// Partner endpoints
		partnerGroup := apiV1.Group("")
		partnerGroup.Use(PartnerJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			partnerGroup.GET("/me", partnerHandler.Me)
			partnerGroup.POST("/referrals", partnerHandler.CreateReferral)
			partnerGroup.GET("/referrals", partnerHandler.ListMyDeals)
			partnerGroup.GET("/referrals/:id", partnerHandler.GetMyDeal)
			partnerGroup.GET("/commissions/payments", partnerHandler.ListMyPayments)
			partnerGroup.GET("/commissions/splits", partnerHandler.ListMySplits)
		}

		// Admin endpoints
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.PUT("/password", adminHandler.ChangePassword)

				// Deal pipeline
				authorized.GET("/deals", adminHandler.ListDeals)
				authorized.GET("/deals/:id", adminHandler.GetDeal)
				authorized.POST("/deals/:id/quote", adminHandler.SendQuote)
				authorized.POST("/deals/:id/advance", adminHandler.AdvanceStage)
				authorized.POST("/deals/:id/decline", adminHandler.DeclineDeal)

				// Commission distribution
				authorized.POST("/deals/:id/commission", adminHandler.CreateCommission)
				authorized.GET("/deals/:id/payment-status", adminHandler.GetDealPaymentStatus)
				authorized.POST("/payments/:id/approve", adminHandler.ApprovePayment)
				authorized.POST("/payments/:id/reject", adminHandler.RejectPayment)
				authorized.POST("/payments/:id/mark-paid", adminHandler.MarkPaid)
				authorized.GET("/payments", adminHandler.ListPayments)
				authorized.GET("/splits", adminHandler.ListSplits)
				authorized.GET("/audit-logs", adminHandler.ListAuditLogs)

				// Partner accounts
				authorized.GET("/partners", adminHandler.ListPartners)
				authorized.GET("/partners/:id", adminHandler.GetPartner)
				authorized.PUT("/partners/:id/status", adminHandler.UpdatePartnerStatus)

				// Roles
				authorized.GET("/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
