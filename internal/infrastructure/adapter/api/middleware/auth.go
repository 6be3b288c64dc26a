package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
)

// UserIDKey is the gin context key holding the authenticated user ID
const UserIDKey = "user_id"

// BasicAuth authenticates every request with HTTP Basic credentials.
// Unknown users and wrong passwords get the same 401.
func BasicAuth(users usecase.UserUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}

		user, err := users.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if errs.ErrorCode(err) == errs.CodeInvalidCredentials {
				unauthorized(c)
				return
			}
			AbortWithError(c, logger, err)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// AuthenticatedUserID returns the user set by BasicAuth
func AuthenticatedUserID(c *gin.Context) uint64 {
	return c.GetUint64(UserIDKey)
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="ledger", charset="UTF-8"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:      errs.CodeInvalidCredentials,
		Message:   "Invalid credentials",
		RequestID: c.GetString(RequestIDKey),
	})
}
