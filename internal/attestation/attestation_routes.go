package attestation

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	attestations := r.Group("/attestations")
	attestations.Use(middleware.AuthMiddleware())
	{
		attestations.GET("", middleware.RBACAuthorize(rbacService, "attestation", "approve"), handler.GetAll)
		attestations.GET("/me", middleware.RBACAuthorize(rbacService, "attestation", "read"), handler.GetMine)
		attestations.GET("/:id", middleware.RBACAuthorize(rbacService, "attestation", "read"), handler.GetByID)
		attestations.POST("", middleware.RBACAuthorize(rbacService, "attestation", "create"), handler.Create)
		attestations.PUT("/:id/decision", middleware.RBACAuthorize(rbacService, "attestation", "approve"), handler.Decide)
	}
}
