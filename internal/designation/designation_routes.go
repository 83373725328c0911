package designation

import (
	"payslip-portal/internal/auth"
	"payslip-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	designations := r.Group("/designations")
	designations.Use(middleware.AuthMiddleware())
	{
		designations.GET("", h.GetAll)
		designations.GET("/:id", h.GetById)

		admin := designations.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}
