package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler middleware recovers from panics and returns a 500 response
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetString(RequestIDKey),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:      errs.CodeInternalServer,
					Message:   "Internal server error",
					RequestID: c.GetString(RequestIDKey),
				})
			}
		}()

		c.Next()
	}
}

// HTTPStatus maps a domain error to its HTTP status code
func HTTPStatus(err error) int {
	switch code := errs.ErrorCode(err); {
	case code == errs.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case code == errs.CodeAccountNotFound || code == errs.CodeUserNotFound:
		return http.StatusNotFound
	case code == errs.CodeDuplicateAccountName || code == errs.CodeDuplicateUser:
		return http.StatusConflict
	case code == errs.CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case code == errs.CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case code >= 4000 && code < 5000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError writes the error response for err. Server-side failures are logged
// and their details withheld from the client.
func AbortWithError(c *gin.Context, logger coreport.Logger, err error) {
	status := HTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		fields := map[string]any{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		}
		var storageErr *errs.StorageError
		if errors.As(err, &storageErr) {
			for k, v := range storageErr.LogFields() {
				fields[k] = v
			}
		}
		logger.Error("Request failed", fields)

		message = "Internal server error"
		if status == http.StatusServiceUnavailable {
			message = "Service temporarily unavailable, please retry"
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:      errs.ErrorCode(err),
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	})
}
