package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles money movements and history
type TransactionHandler struct {
	transactionUseCase usecase.TransactionUseCase
	formatter          *dto.MoneyFormatter
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactionUseCase usecase.TransactionUseCase,
	formatter *dto.MoneyFormatter,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
		formatter:          formatter,
		logger:             logger,
	}
}

type movementFunc func(c *gin.Context, userID uint64, account string, amount int64, note string) (int64, error)

// Deposit handles POST /accounts/:name/deposits
func (h *TransactionHandler) Deposit(c *gin.Context) {
	h.handleMovement(c, func(c *gin.Context, userID uint64, account string, amount int64, note string) (int64, error) {
		return h.transactionUseCase.Deposit(c.Request.Context(), userID, account, amount, note)
	})
}

// Withdraw handles POST /accounts/:name/withdrawals
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	h.handleMovement(c, func(c *gin.Context, userID uint64, account string, amount int64, note string) (int64, error) {
		return h.transactionUseCase.Withdraw(c.Request.Context(), userID, account, amount, note)
	})
}

func (h *TransactionHandler) handleMovement(c *gin.Context, move movementFunc) {
	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, invalidRequest(err))
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	account := c.Param("name")
	balance, err := move(c, middleware.AuthenticatedUserID(c), account, amount, req.Note)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Account: account,
		Balance: h.formatter.Amount(balance),
	})
}

// Transfer handles POST /transfers
func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, h.logger, invalidRequest(err))
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	result, err := h.transactionUseCase.Transfer(c.Request.Context(), middleware.AuthenticatedUserID(c), req.From, req.To, amount, req.Note)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		From: dto.BalanceResponse{Account: req.From, Balance: h.formatter.Amount(result.FromBalance)},
		To:   dto.BalanceResponse{Account: req.To, Balance: h.formatter.Amount(result.ToBalance)},
	})
}

// History handles GET /accounts/:name/transactions?limit=N
func (h *TransactionHandler) History(c *gin.Context) {
	limit, err := transaction.ParseHistoryLimit(c.Query("limit"))
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	account := c.Param("name")
	transactions, err := h.transactionUseCase.GetHistory(c.Request.Context(), middleware.AuthenticatedUserID(c), account, limit)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(account, transactions, h.formatter))
}
