package upload

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

	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	uploads.Use(middleware.RequireRole(auth.RoleAdmin))
	{
		uploads.GET("", handler.GetAll)
		uploads.GET("/:id", handler.GetById)
		uploads.DELETE("/:id", handler.Delete)

		if redisClient != nil {
			uploads.POST("/import", middleware.Idempotency(redisClient), handler.ImportFlexible)
			uploads.POST("/validate", handler.ValidateStrict)
			uploads.POST("/:id/convert", middleware.Idempotency(redisClient), handler.Convert)
		} else {
			uploads.POST("/import", handler.ImportFlexible)
			uploads.POST("/validate", handler.ValidateStrict)
			uploads.POST("/:id/convert", handler.Convert)
		}
	}
}
