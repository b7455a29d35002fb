package app

import (
	"database/sql"
	"os"
	"strconv"

	"github.com/ekowhinson/HRMS-sub004/internal/employee"
	"github.com/ekowhinson/HRMS-sub004/internal/messaging/kafka"
	"github.com/ekowhinson/HRMS-sub004/internal/middleware"
	"github.com/ekowhinson/HRMS-sub004/internal/payrollrun"
	"github.com/ekowhinson/HRMS-sub004/internal/policy"
	"github.com/ekowhinson/HRMS-sub004/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func payrollWorkers() int {
	if raw := os.Getenv("PAYROLL_WORKERS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 4
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	policyRepo := policy.NewRepository(gormDB)
	runRepo := payrollrun.NewRepository(gormDB)

	// --- Services ---
	policyService := policy.NewService(db, policyRepo, rdb)
	runService := payrollrun.NewServiceWithOutbox(
		db, runRepo, employeeRepo, policyService, counterRepo, outboxRepo, payrollWorkers(),
	)

	// --- Handlers ---
	policyHandler := policy.NewHandler(policyService)
	runHandler := payrollrun.NewHandlerWithRedis(runService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.CompanyScope())
	{
		policy.RegisterRoutes(api, policyHandler)
		payrollrun.RegisterRoutes(api, runHandler, rdb)
	}

	return nil
}
