package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	User        *handler.UserHandler
	Account     *handler.AccountHandler
	Transaction *handler.TransactionHandler
	Health      *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, users usecase.UserUseCase, logger coreport.Logger) {
	router.GET("/health", handlers.Health.Health)

	// POST /users is the only unauthenticated write
	router.POST("/users", handlers.User.Signup)

	authenticated := router.Group("/", middleware.BasicAuth(users, logger))
	{
		authenticated.GET("/accounts", handlers.Account.ListAccounts)
		authenticated.POST("/accounts", handlers.Account.CreateAccount)
		authenticated.GET("/accounts/:name", handlers.Account.GetAccount)

		authenticated.POST("/accounts/:name/deposits", handlers.Transaction.Deposit)
		authenticated.POST("/accounts/:name/withdrawals", handlers.Transaction.Withdraw)
		authenticated.GET("/accounts/:name/transactions", handlers.Transaction.History)

		authenticated.POST("/transfers", handlers.Transaction.Transfer)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.RequestID())
	// Logger wraps recovery so recovered panics are logged as 500s
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS())
}
