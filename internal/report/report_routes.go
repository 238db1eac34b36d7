package report

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("", middleware.RBACAuthorize(rbacService, "report", "approve"), handler.GetAll)
		reports.GET("/me", middleware.RBACAuthorize(rbacService, "report", "read"), handler.GetMine)
		reports.GET("/:id", middleware.RBACAuthorize(rbacService, "report", "read"), handler.GetByID)
		reports.POST("", middleware.RBACAuthorize(rbacService, "report", "create"), handler.Create)
		reports.PUT("/:id/review", middleware.RBACAuthorize(rbacService, "report", "approve"), handler.Review)
	}
}
