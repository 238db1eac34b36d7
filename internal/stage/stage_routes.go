package stage

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	stages := r.Group("/stages")
	stages.Use(middleware.AuthMiddleware())
	{
		stages.GET("", middleware.RBACAuthorize(rbacService, "stage", "read"), handler.GetAll)
		stages.GET("/unassigned", middleware.RBACAuthorize(rbacService, "stage", "read"), handler.GetUnassigned)
		stages.GET("/me", middleware.RBACAuthorize(rbacService, "stage", "read"), handler.GetMine)
		stages.GET("/mentored", middleware.RBACAuthorize(rbacService, "stage", "approve"), handler.GetMentored)
		stages.GET("/pending", middleware.RBACAuthorize(rbacService, "stage", "approve"), handler.GetPending)
		stages.GET("/history", middleware.RBACAuthorize(rbacService, "stage", "approve"), handler.GetHistory)
		stages.GET("/:id", middleware.RBACAuthorize(rbacService, "stage", "read"), handler.GetByID)
		stages.POST("", middleware.RBACAuthorize(rbacService, "stage", "create"), handler.Create)
		stages.POST("/match/:internId", middleware.RBACAuthorize(rbacService, "stage", "create"), handler.AutoMatch)
		stages.PUT("/:id", middleware.RBACAuthorize(rbacService, "stage", "update"), handler.Update)
		stages.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "stage", "update"), handler.SetStatus)
		stages.PUT("/:id/mentor", middleware.RBACAuthorize(rbacService, "stage", "update"), handler.AssignMentor)
		stages.PUT("/:id/confirmation", middleware.RBACAuthorize(rbacService, "stage", "approve"), handler.Confirm)
		stages.PUT("/:id/rejection", middleware.RBACAuthorize(rbacService, "stage", "approve"), handler.Reject)
		stages.DELETE("/:id", middleware.RBACAuthorize(rbacService, "stage", "delete"), handler.Delete)
	}
}
