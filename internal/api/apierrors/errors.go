package apierrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest          ErrorCode = "bad_request"
	ErrCodeNotFound            ErrorCode = "not_found"
	ErrCodeValidationFailed    ErrorCode = "validation_failed"
	ErrCodeUnauthorized        ErrorCode = "unauthorized"
	ErrCodeForbidden           ErrorCode = "forbidden"
	ErrCodeConflict            ErrorCode = "conflict"
	ErrCodeInsufficientBalance ErrorCode = "insufficient_balance"
	ErrCodeInvalidState        ErrorCode = "invalid_state"
	ErrCodeRateLimited         ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError is the body of every error response
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code) + ": " + e.Message + " (" + e.Details + ")"
}

// Response is the error envelope
type Response struct {
	Error *APIError `json:"error"`
}

func newError(code ErrorCode, message string, details []string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newError(ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(ErrCodeUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newError(ErrCodeForbidden, message, details)
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return newError(ErrCodeRateLimited, message, details)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(ErrCodeInternalError, message, details)
}

// Abort writes the envelope and stops the handler chain
func Abort(c *gin.Context, status int, err *APIError) {
	c.AbortWithStatusJSON(status, Response{Error: err})
}

// Respond writes the envelope without aborting
func Respond(c *gin.Context, status int, err *APIError) {
	c.JSON(status, Response{Error: err})
}

// FromDomain maps a ledger error to its HTTP status and body.
// ok is false for errors that are not part of the ledger's contract.
func FromDomain(err error) (status int, apiErr *APIError, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrBelowMinimumAmount),
		errors.Is(err, domain.ErrMissingIdempotencyKey):
		return http.StatusBadRequest, NewValidationError(err.Error()), true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, NewNotFoundError("User not found", err.Error()), true
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, NewNotFoundError("Transaction not found", err.Error()), true
	case errors.Is(err, domain.ErrUnknownFarmingProduct):
		return http.StatusNotFound, NewNotFoundError("Farming product not found", err.Error()), true
	case errors.Is(err, domain.ErrPositionNotFound):
		return http.StatusNotFound, NewNotFoundError("Farming position not found", err.Error()), true
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, newError(ErrCodeInsufficientBalance, "Insufficient balance", []string{err.Error()}), true
	case errors.Is(err, domain.ErrInvalidTransactionState),
		errors.Is(err, domain.ErrNotPropagatable):
		return http.StatusConflict, newError(ErrCodeInvalidState, "Invalid transaction state", []string{err.Error()}), true
	case errors.Is(err, domain.ErrIdempotencyKeyConflict):
		return http.StatusConflict, newError(ErrCodeConflict, "Idempotency key conflict", []string{err.Error()}), true
	}
	return http.StatusInternalServerError, NewInternalError("Internal server error"), false
}
