package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "manufacturing-backend/internal/pkg/errors"
	"manufacturing-backend/internal/pkg/logger"
)

// ErrorHandler writes the last error a handler pushed with c.Error as
// {"error": message}. AppErrors choose their own status; anything else is a
// 500 with a generic message. Causes are logged, never returned.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c.Request.Context())),
			zap.String("path", c.FullPath()),
		}

		if appErr, ok := apperrors.IsAppError(err); ok {
			fields = append(fields,
				zap.String("kind", string(appErr.Kind)),
				zap.String("message", appErr.Message),
				zap.Int("status", appErr.HTTPStatus),
				zap.Error(appErr.Err))
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				log.Error("request failed", fields...)
			} else {
				log.Debug("request rejected", fields...)
			}
			c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
			return
		}

		log.Error("unhandled request error", append(fields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
