package main

import (
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/middleware"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authLimiter.Middleware(), svc.authHandler.Login)
			auth.POST("/register", authLimiter.Middleware(), svc.authHandler.Register)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Initiatives (read and owner operations for all users)
			protected.GET("/initiatives", svc.initiativeHandler.List)
			protected.GET("/initiatives/:id", svc.initiativeHandler.GetByID)
			protected.POST("/initiatives", svc.initiativeHandler.Create)
			protected.PUT("/initiatives/:id", svc.initiativeHandler.Update)
			protected.POST("/initiatives/:id/submit", svc.initiativeHandler.Submit)

			// Roadmap board
			protected.GET("/roadmap", svc.initiativeHandler.ListRoadmap)

			// Votes
			protected.GET("/votes/board", svc.voteHandler.Board)
			protected.GET("/initiatives/:id/vote", svc.voteHandler.GetVoteStatus)
			protected.POST("/initiatives/:id/vote", svc.voteHandler.Vote)
			protected.DELETE("/initiatives/:id/vote", svc.voteHandler.Unvote)

			// Comments
			protected.GET("/initiatives/:id/comments", svc.commentHandler.List)
			protected.POST("/initiatives/:id/comments", svc.commentHandler.Create)
			protected.DELETE("/comments/:id", svc.commentHandler.Delete)

			// Dashboard
			protected.GET("/dashboard/stats", svc.dashboardHandler.GetStats)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Governance decisions
			admin.PUT("/initiatives/:id/status", svc.initiativeHandler.SetStatus)
			admin.PUT("/initiatives/:id/roadmap", svc.initiativeHandler.SetRoadmapStatus)
			admin.PUT("/initiatives/:id/evaluation", svc.initiativeHandler.Evaluate)
			admin.DELETE("/initiatives/:id", svc.initiativeHandler.Delete)

			// System Logs
			admin.GET("/system-logs", svc.systemLogHandler.List)
			admin.GET("/system-logs/modules", svc.systemLogHandler.GetModules)
			admin.DELETE("/system-logs", svc.systemLogHandler.Cleanup)
		}
	}
}
