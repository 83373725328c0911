package auth

import (
	"payslip-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
		// Only an existing admin can provision portal accounts.
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RequireRole(RoleAdmin),
			middleware.RateLimitByUser(2, 5),
			handler.Register,
		)
	}
}
