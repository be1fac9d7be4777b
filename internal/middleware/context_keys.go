package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// employeeIDKey stores the authenticated employee's ID.
const employeeIDKey = contextKey("employeeID")

// GetEmployeeIDFromContext retrieves the authenticated employee ID set by AuthMiddleware.
func GetEmployeeIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(employeeIDKey)); exists {
		id, ok := v.(string)
		return id, ok && id != ""
	}
	return GetEmployeeIDFromCtx(c.Request.Context())
}

// GetEmployeeIDFromCtx retrieves the authenticated employee ID from a request context.
func GetEmployeeIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDKey).(string)
	return id, ok && id != ""
}
