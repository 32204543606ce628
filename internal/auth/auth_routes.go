package auth

import (
	"go-tams/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Login is unauthenticated, so it gets a tighter per-IP limit.
		authGroup.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
	}
}
