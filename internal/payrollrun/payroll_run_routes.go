package payrollrun

import (
	"github.com/ekowhinson/HRMS-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	runs := r.Group("/payroll-runs")
	{
		runs.POST("",
			middleware.RateLimitByIP(0.1, 1),
			middleware.Idempotency(rdb),
			handler.Trigger,
		)
		runs.GET("",
			middleware.RateLimitByIP(2, 5),
			handler.GetAll,
		)
		runs.GET("/:id",
			middleware.RateLimitByIP(2, 5),
			handler.GetById,
		)
		runs.GET("/:id/results",
			middleware.RateLimitByIP(1, 3),
			handler.GetResults,
		)
	}
}
