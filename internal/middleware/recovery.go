package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/allinone/manager/internal/pkg/response"
)

// Recovery turns panics into 500 responses. The stack is included in the
// body only outside production.
func Recovery(includeStack bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		stack := string(debug.Stack())
		logutil.GetLogger(c.Request.Context()).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("stack", stack),
		)
		if includeStack {
			response.ErrorWithStack(c, http.StatusInternalServerError, "Internal Server Error", stack)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
	})
}
