package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudharma/resto-pos/utils"
)

// RequireRole allows the named role or admin through, everything else is rejected.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != role && userRole != "admin" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", role))
			c.Abort()
			return
		}

		c.Next()
	}
}
