package auth

import (
	"time"

	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Tight limit on the credential endpoints only.
	loginLimiter := middleware.RateLimitByIP(rate.Every(time.Second), 5)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", loginLimiter, handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.POST("/seed-admin", loginLimiter, handler.SeedAdmin)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
