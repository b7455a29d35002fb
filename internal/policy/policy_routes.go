package policy

import (
	"github.com/ekowhinson/HRMS-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	policies := r.Group("/policy")
	{
		policies.GET("/components",
			middleware.RateLimitByIP(2, 5),
			handler.GetComponents,
		)
		policies.POST("/components",
			middleware.RateLimitByIP(0.5, 2),
			handler.CreateComponent,
		)
		policies.POST("/salary-records",
			middleware.RateLimitByIP(0.5, 2),
			handler.CreateSalaryRecord,
		)
		policies.POST("/overrides",
			middleware.RateLimitByIP(0.5, 2),
			handler.CreateOverride,
		)
		policies.POST("/adhoc-payments",
			middleware.RateLimitByIP(0.5, 2),
			handler.CreateAdHocPayment,
		)
		policies.PUT("/tax-brackets",
			middleware.RateLimitByIP(0.2, 1),
			handler.SetTaxBrackets,
		)
		policies.POST("/statutory-rates",
			middleware.RateLimitByIP(0.2, 1),
			handler.CreateStatutoryRate,
		)
	}
}
