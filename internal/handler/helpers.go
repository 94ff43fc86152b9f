package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/allinone/manager/internal/middleware"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/pkg/response"
)

// contextExposeErrorsKey is set by the router outside production so that
// internal failure details reach the response body.
const contextExposeErrorsKey = "expose_errors"

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "Not Found")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
	case err == appErr.ErrInvalidCredentials:
		response.Error(c, http.StatusUnauthorized, "invalid credentials")
	case err == appErr.ErrUnauthorized || err == appErr.ErrTokenExpired || err == appErr.ErrTokenInvalid:
		response.Error(c, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	case err == appErr.ErrForbidden:
		response.Error(c, http.StatusForbidden, http.StatusText(http.StatusForbidden))
	case appErr.IsConflict(err):
		response.Error(c, http.StatusConflict, http.StatusText(http.StatusConflict))
	default:
		requestID, _ := c.Get(middleware.ContextRequestIDKey)
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("request_id", requestID),
			zap.Error(err),
		)
		message := http.StatusText(http.StatusInternalServerError)
		if c.GetBool(contextExposeErrorsKey) {
			message = err.Error()
		}
		response.Error(c, http.StatusInternalServerError, message)
	}
}
