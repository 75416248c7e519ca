package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-yield-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	apiKey := middleware.Auth(auth, middleware.AuthTypeAPIKey)
	userOrAPIKey := []gin.HandlerFunc{middleware.Auth(auth), middleware.RequireSubject("user_id")}
	user := []gin.HandlerFunc{middleware.Auth(auth, middleware.AuthTypeJWT), middleware.RequireSubject("user_id")}

	v1 := router.Group("/api/v1")
	{
		// Service-to-service writes
		v1.POST("/users", apiKey, handler.RegisterUser)
		v1.POST("/deposits", apiKey, handler.CreditDeposit)
		v1.POST("/transactions/:id/complete", apiKey, handler.CompleteTransaction)
		v1.POST("/transactions/:id/cancel", apiKey, handler.CancelTransaction)
		v1.POST("/transactions/:id/commissions/propagate", apiKey, handler.PropagateCommissions)
		v1.GET("/users/:user_id/balances/:currency/reconcile", apiKey, handler.ReconcileBalance)

		// Reads for the user or a service
		v1.GET("/users/:user_id/balances/:currency", append(userOrAPIKey, handler.GetBalance)...)
		v1.GET("/users/:user_id/transactions", append(userOrAPIKey, handler.ListTransactions)...)

		// User-initiated writes
		v1.POST("/users/:user_id/withdrawals", append(user, handler.RequestWithdrawal)...)
		v1.POST("/users/:user_id/farming/:product_id/deposit", append(user, handler.DepositToFarming)...)
		v1.POST("/users/:user_id/farming/:product_id/close", append(user, handler.CloseFarmingPosition)...)

		// Public reads
		v1.GET("/farming/products", handler.ListFarmingProducts)
		v1.GET("/scheduler/:name/status", handler.GetSchedulerStatus)
	}
}
