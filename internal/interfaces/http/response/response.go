package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Anything that is not an AppError is
// logged server-side and surfaced as a generic 500; internal details
// never reach the client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		logger.WithContext(c.Request.Context()).Error("unhandled error: " + err.Error())
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
