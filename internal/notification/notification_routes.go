package notification

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetMine)
		notifications.PUT("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkRead)
		notifications.PUT("/read-all", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkAllRead)
	}
}
