package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ErrorWithStack is used outside production so callers can see where an
// unexpected failure came from.
func ErrorWithStack(c *gin.Context, status int, message, stack string) {
	c.JSON(status, gin.H{"error": message, "stack": stack})
}
