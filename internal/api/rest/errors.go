package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/api/shared/errors"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, errors.NewValidationError(details))
}

// respondInternalError logs err and responds without exposing it
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message))
}

func respondQueueError(c *gin.Context, err error, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusServiceUnavailable, errors.NewQueueError("Failed to enqueue message"))
}
