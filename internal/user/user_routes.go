package user

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetByID)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "create"), handler.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "update"), handler.Update)
		users.PUT("/:id/deactivate", middleware.RBACAuthorize(rbacService, "user", "delete"), handler.Deactivate)
		users.PUT("/:id/reactivate", middleware.RBACAuthorize(rbacService, "user", "update"), handler.Reactivate)
	}
}
