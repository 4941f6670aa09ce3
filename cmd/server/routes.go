package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kyc-onboard.backend/internal/interfaces/http/handlers"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "kyc-onboard-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	kycHandler      *handlers.KYCHandler
	adminHandler    *handlers.AdminHandler
	documentHandler *handlers.DocumentHandler
	authMiddleware  gin.HandlerFunc
	rateLimiter     gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		api.POST("/register", d.rateLimiter, d.authHandler.Register)
		api.POST("/login", d.rateLimiter, d.authHandler.Login)

		// User routes (protected)
		api.POST("/upload_kyc", d.authMiddleware, d.kycHandler.UploadKYC)
		api.GET("/profile", d.authMiddleware, d.authHandler.Profile)

		// Admin routes (protected)
		admin := api.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/pending_kyc", d.adminHandler.PendingKYC)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/verify_kyc/:user_id", d.adminHandler.VerifyKYC)
		}
	}

	// Stored documents (protected; owner or admin only)
	r.GET("/uploads/:filename", d.authMiddleware, d.documentHandler.ServeDocument)
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
