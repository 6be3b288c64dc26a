package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/middleware"
)

// UserHandler handles signup
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userUseCase usecase.UserUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// Signup handles POST /users
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, invalidRequest(err))
		return
	}

	user, err := h.userUseCase.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err.Error())
}
