package middleware

import (
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the last error attached with c.Error when the handler
// did not produce a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		utils.HandleError(c, c.Errors.Last().Err)
	}
}
