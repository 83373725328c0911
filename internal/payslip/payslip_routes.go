package payslip

import (
	"payslip-portal/internal/auth"
	"payslip-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("", handler.GetAll)
		payslips.GET("/periods", handler.ListPeriods)
		payslips.GET("/summary", handler.Summary)
		payslips.GET("/export", handler.ExportExcel)
		payslips.GET("/:id", handler.GetById)
		payslips.GET("/:id/pdf", handler.DownloadPDF)

		admin := payslips.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			if redisClient != nil {
				admin.POST("", middleware.Idempotency(redisClient), handler.Create)
			} else {
				admin.POST("", handler.Create)
			}
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
			admin.POST("/:id/recalculate", handler.Recalculate)
			admin.POST("/fix-zero-net", handler.FixZeroNet)
		}
	}
}
