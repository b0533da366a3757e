package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/alfredjoe/Online-Quiz/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recover turns a panic in a later handler into a 500 JSON response with
// the panic value as the error message. The stack is logged.
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.FromContext(c.Request.Context()).Error("panic recovered",
				"error", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprint(rec),
			})
		}()
		c.Next()
	}
}
