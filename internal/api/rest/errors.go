package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/api/apierrors"
	"github.com/feral-file/ff-yield-ledger/internal/api/middleware"
	"github.com/feral-file/ff-yield-ledger/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	apierrors.Respond(c, http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	apierrors.Respond(c, http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	apierrors.Respond(c, http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondError maps ledger errors to their status; anything else is logged and answered with a 500
func respondError(c *gin.Context, err error, message string, fields ...zap.Field) {
	status, apiErr, known := apierrors.FromDomain(err)
	if !known {
		fields = append(fields, zap.String("request_id", middleware.GetRequestID(c)), zap.String("message", message))
		logger.ErrorCtx(c.Request.Context(), err, fields...)
		apiErr = apierrors.NewInternalError(message)
	}
	_ = c.Error(err)
	apierrors.Respond(c, status, apiErr)
}
