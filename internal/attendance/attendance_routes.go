package attendance

import (
	"go-tams/internal/authz"
	"go-tams/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *authz.Enforcer, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in", middleware.Authorize(enforcer, "attendance", "create"), middleware.Idempotency(rdb), h.CheckIn)
		attendances.POST("/check-out", middleware.Authorize(enforcer, "attendance", "create"), middleware.Idempotency(rdb), h.CheckOut)
		attendances.GET("/today", middleware.Authorize(enforcer, "attendance", "read"), h.GetToday)
		attendances.GET("/range", middleware.Authorize(enforcer, "attendance", "read"), h.GetForRange)
		attendances.GET("", middleware.Authorize(enforcer, "attendance", "read_all"), h.Query)
		attendances.GET("/department", middleware.Authorize(enforcer, "attendance", "read_all"), h.GetDepartmentAttendance)
		attendances.PATCH("/:id", middleware.Authorize(enforcer, "attendance", "update"), h.Update)
	}
}
