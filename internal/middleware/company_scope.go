package middleware

import (
	"net/http"

	"github.com/ekowhinson/HRMS-sub004/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyScope resolves the tenant for the request from the X-Company-ID
// header and stores it under "company_id". Requests without a valid company
// are rejected before any handler runs.
func CompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader("X-Company-ID")
		if companyID == "" {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "X-Company-ID header is required", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(companyID); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "X-Company-ID must be a valid UUID", nil)
			c.Abort()
			return
		}

		c.Set("company_id", companyID)
		c.Next()
	}
}
