package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes for the booking and payment workflow.
const (
	CodeInvalidRange   = "invalidRange"
	CodeNotFound       = "notFound"
	CodeAlreadyBooked  = "alreadyBooked"
	CodePartialFailure = "partialFailure"
	CodeNotOnboarded   = "notOnboarded"
	CodeInvalidAmount  = "invalidAmount"
	CodeGateway        = "gatewayError"
)

// ServiceError carries a stable code alongside the message so handlers can
// map workflow outcomes to HTTP statuses without string matching.
type ServiceError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func NewServiceError(code, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

// WrapServiceError keeps the underlying cause reachable through errors.Is/As.
func WrapServiceError(code, msg string, cause error) error {
	return &ServiceError{Code: code, Message: msg, Cause: cause}
}

// IsCode reports whether err (or anything it wraps) is a ServiceError with
// the given code.
func IsCode(err error, code string) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Code == code
}

// ErrCode extracts the code from err, or "" when err is not a ServiceError.
func ErrCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ErrorResponse defines the structure of error responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
