package contract

import (
	"github.com/sambizara/GRH-Back/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware())
	{
		contracts.GET("", middleware.RBACAuthorize(rbacService, "contract", "approve"), handler.GetAll)
		contracts.GET("/me", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetMine)
		contracts.GET("/expiring", middleware.RBACAuthorize(rbacService, "contract", "approve"), handler.GetExpiring)
		contracts.GET("/expiring/stats", middleware.RBACAuthorize(rbacService, "contract", "approve"), handler.GetExpirationStats)
		contracts.GET("/:id", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetByID)
		contracts.GET("/:id/can-renew", middleware.RBACAuthorize(rbacService, "contract", "approve"), handler.CanRenew)
		contracts.POST("", middleware.RBACAuthorize(rbacService, "contract", "create"), middleware.Idempotency(rdb), handler.Create)
		contracts.POST("/:id/renew", middleware.RBACAuthorize(rbacService, "contract", "create"), middleware.Idempotency(rdb), handler.Renew)
		contracts.PUT("/:id", middleware.RBACAuthorize(rbacService, "contract", "update"), handler.Update)
		contracts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "contract", "delete"), handler.Delete)
	}
}
