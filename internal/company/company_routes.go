package company

import (
	"payslip-portal/internal/auth"
	"payslip-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("",
			middleware.RateLimitByUser(2, 10),
			handler.GetAll,
		)
		companies.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			handler.GetById,
		)

		admin := companies.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			// Mutations are rare administrative actions, so the limits are
			// deliberately tight.
			admin.POST("",
				middleware.RateLimitByUser(0.5, 1),
				handler.Create,
			)
			admin.PUT("/:id",
				middleware.RateLimitByUser(0.5, 1),
				handler.Update,
			)
			admin.DELETE("/:id",
				middleware.RateLimitByUser(0.1, 1),
				handler.Delete,
			)
		}
	}
}
