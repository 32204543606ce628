package leave

import (
	"go-tams/internal/authz"
	"go-tams/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *authz.Enforcer,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.Authorize(enforcer, "leave", "create"), middleware.Idempotency(rdb), handler.Create)
		leaves.GET("/me", middleware.Authorize(enforcer, "leave", "read"), handler.GetMine)
		leaves.GET("/statistics", middleware.Authorize(enforcer, "leave", "read"), handler.GetStatistics)
		leaves.GET("", middleware.Authorize(enforcer, "leave", "read_all"), handler.Query)
		leaves.GET("/:id", middleware.Authorize(enforcer, "leave", "read"), handler.GetByID)
		leaves.PATCH("/:id/status", middleware.Authorize(enforcer, "leave", "approve"), handler.UpdateStatus)
		leaves.POST("/:id/comments", middleware.Authorize(enforcer, "leave", "comment"), handler.AddComment)
	}
}
