package app

import (
	"database/sql"

	"github.com/sambizara/GRH-Back/internal/attestation"
	"github.com/sambizara/GRH-Back/internal/auth"
	"github.com/sambizara/GRH-Back/internal/contract"
	"github.com/sambizara/GRH-Back/internal/department"
	"github.com/sambizara/GRH-Back/internal/leave"
	"github.com/sambizara/GRH-Back/internal/leavebalance"
	"github.com/sambizara/GRH-Back/internal/messaging/kafka"
	"github.com/sambizara/GRH-Back/internal/notification"
	"github.com/sambizara/GRH-Back/internal/presence"
	"github.com/sambizara/GRH-Back/internal/rbac"
	"github.com/sambizara/GRH-Back/internal/report"
	"github.com/sambizara/GRH-Back/internal/stage"
	"github.com/sambizara/GRH-Back/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	contractRepo := contract.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	attestationRepo := attestation.NewRepository(gormDB)
	presenceRepo := presence.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	stageRepo := stage.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	ledger := leavebalance.NewLedger(balanceRepo, rdb)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, ledger, outboxRepo)
	contractService := contract.NewService(db, contractRepo)
	contractScanner := contract.NewExpirationScanner(contractRepo, outboxRepo)
	departmentService := department.NewService(departmentRepo)
	notificationService := notification.NewService(notificationRepo)
	attestationService := attestation.NewService(attestationRepo, notificationService)
	presenceService := presence.NewService(db, presenceRepo)
	reportService := report.NewService(reportRepo, notificationService)
	stageService := stage.NewService(stageRepo, notificationService)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService, ledger)
	contractHandler := contract.NewHandler(contractService, contractScanner)
	departmentHandler := department.NewHandler(departmentService)
	attestationHandler := attestation.NewHandler(attestationService)
	presenceHandler := presence.NewHandler(presenceService)
	reportHandler := report.NewHandler(reportService)
	notificationHandler := notification.NewHandler(notificationService)
	stageHandler := stage.NewHandler(stageService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		contract.RegisterRoutes(api, contractHandler, rbacService, rdb)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		attestation.RegisterRoutes(api, attestationHandler, rbacService)
		presence.RegisterRoutes(api, presenceHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		stage.RegisterRoutes(api, stageHandler, rbacService)
	}

	return nil
}
