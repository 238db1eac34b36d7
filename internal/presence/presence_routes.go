package presence

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	presences := r.Group("/presences")
	presences.Use(middleware.AuthMiddleware())
	{
		presences.GET("", middleware.RBACAuthorize(rbacService, "presence", "approve"), handler.GetAll)
		presences.GET("/me", middleware.RBACAuthorize(rbacService, "presence", "read"), handler.GetMine)
		presences.POST("/check-in", middleware.RBACAuthorize(rbacService, "presence", "create"), handler.CheckIn)
		presences.POST("/check-out", middleware.RBACAuthorize(rbacService, "presence", "create"), handler.CheckOut)
	}
}
