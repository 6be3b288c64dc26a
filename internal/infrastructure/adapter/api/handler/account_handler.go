package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/middleware"
)

// AccountHandler handles account-related HTTP requests of the authenticated user
type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	formatter      *dto.MoneyFormatter
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accountUseCase usecase.AccountUseCase, formatter *dto.MoneyFormatter, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		formatter:      formatter,
		logger:         logger,
	}
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, invalidRequest(err))
		return
	}

	account, err := h.accountUseCase.CreateAccount(c.Request.Context(), middleware.AuthenticatedUserID(c), req.Name, req.Kind)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountResponse(account, h.formatter))
}

// ListAccounts handles GET /accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountUseCase.ListAccounts(c.Request.Context(), middleware.AuthenticatedUserID(c))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	resp := dto.AccountListResponse{Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for _, account := range accounts {
		resp.Accounts = append(resp.Accounts, dto.NewAccountResponse(account, h.formatter))
	}
	c.JSON(http.StatusOK, resp)
}

// GetAccount handles GET /accounts/:name
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountUseCase.GetAccount(c.Request.Context(), middleware.AuthenticatedUserID(c), c.Param("name"))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account, h.formatter))
}
