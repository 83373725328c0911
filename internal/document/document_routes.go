package document

import (
	"payslip-portal/internal/auth"
	"payslip-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("", h.GetAll)
		documents.GET("/:id", h.GetById)
		documents.GET("/:id/download", h.Download)

		admin := documents.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("", h.Upload)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
			admin.GET("/:id/access-log", h.AccessLog)
		}
	}
}
