package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-yield-ledger/internal/api/rest/dto"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/sweeper"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// RegisterUser registers a user under an optional inviter code
	// POST /api/v1/users
	RegisterUser(c *gin.Context)

	// CreditDeposit credits a confirmed external deposit
	// POST /api/v1/deposits
	CreditDeposit(c *gin.Context)

	// GetBalance returns the materialized balance
	// GET /api/v1/users/:user_id/balances/:currency
	GetBalance(c *gin.Context)

	// ReconcileBalance replays the ledger and flags divergence
	// GET /api/v1/users/:user_id/balances/:currency/reconcile
	ReconcileBalance(c *gin.Context)

	// ListTransactions lists a user's ledger rows
	// GET /api/v1/users/:user_id/transactions?currency=<currency>&kind=<kind1>&kind=<kind2>&status=<status>&created_after=<rfc3339>&created_before=<rfc3339>&limit=<limit>&offset=<offset>
	ListTransactions(c *gin.Context)

	// RequestWithdrawal reserves funds with a pending withdrawal
	// POST /api/v1/users/:user_id/withdrawals
	RequestWithdrawal(c *gin.Context)

	// CompleteTransaction completes a pending transaction
	// POST /api/v1/transactions/:id/complete
	CompleteTransaction(c *gin.Context)

	// CancelTransaction cancels a pending transaction
	// POST /api/v1/transactions/:id/cancel
	CancelTransaction(c *gin.Context)

	// ListFarmingProducts lists the farming products on offer
	// GET /api/v1/farming/products
	ListFarmingProducts(c *gin.Context)

	// DepositToFarming moves balance into the user's position in a farming product
	// POST /api/v1/users/:user_id/farming/:product_id/deposit
	DepositToFarming(c *gin.Context)

	// CloseFarmingPosition settles and refunds the user's position in a farming product
	// POST /api/v1/users/:user_id/farming/:product_id/close
	CloseFarmingPosition(c *gin.Context)

	// PropagateCommissions re-runs commission propagation for a source transaction
	// POST /api/v1/transactions/:id/commissions/propagate
	PropagateCommissions(c *gin.Context)

	// GetSchedulerStatus returns the last tick of a sweeper
	// GET /api/v1/scheduler/:name/status
	GetSchedulerStatus(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	ledger ledger.Ledger
	health sweeper.HealthReader
}

// NewHandler creates a new REST API handler
func NewHandler(l ledger.Ledger, health sweeper.HealthReader) Handler {
	return &handler{
		ledger: l,
		health: health,
	}
}

func (h *handler) RegisterUser(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user, err := h.ledger.RegisterUser(c.Request.Context(), req.UserID, req.InviterCode)
	if err != nil {
		respondError(c, err, "Failed to register user", zap.Uint64("userID", req.UserID))
		return
	}

	resp, err := dto.MapUser(user)
	if err != nil {
		respondError(c, err, "Failed to register user", zap.Uint64("userID", req.UserID))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) CreditDeposit(c *gin.Context) {
	var req dto.CreditDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.ledger.CreditExternalDeposit(c.Request.Context(), ledger.CreditDepositInput{
		UserID:         req.UserID,
		Currency:       currency,
		Amount:         req.Amount,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
	})
	if err != nil {
		respondError(c, err, "Failed to credit deposit",
			zap.Uint64("userID", req.UserID),
			zap.String("idempotencyKey", req.IdempotencyKey))
		return
	}

	c.JSON(writeStatus(result.Created), dto.MapDeposit(result))
}

func (h *handler) GetBalance(c *gin.Context) {
	userID, currency, ok := userCurrencyParams(c)
	if !ok {
		return
	}

	balance, err := h.ledger.GetBalance(c.Request.Context(), userID, currency)
	if err != nil {
		respondError(c, err, "Failed to get balance", zap.Uint64("userID", userID))
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:   userID,
		Currency: currency,
		Balance:  balance,
	})
}

func (h *handler) ReconcileBalance(c *gin.Context) {
	userID, currency, ok := userCurrencyParams(c)
	if !ok {
		return
	}

	result, err := h.ledger.Audit(c.Request.Context(), userID, currency)
	if err != nil {
		respondError(c, err, "Failed to reconcile balance", zap.Uint64("userID", userID))
		return
	}

	c.JSON(http.StatusOK, dto.MapAudit(result))
}

func (h *handler) ListTransactions(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		respondBadRequest(c, "Invalid user ID", err.Error())
		return
	}

	params, err := ParseListTransactionsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	filter, err := params.Filter(userID)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	rows, total, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions", zap.Uint64("userID", userID))
		return
	}

	c.JSON(http.StatusOK, dto.MapTransactions(rows, total, params.Limit, params.Offset))
}

func (h *handler) RequestWithdrawal(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		respondBadRequest(c, "Invalid user ID", err.Error())
		return
	}

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.ledger.RequestWithdrawal(c.Request.Context(), userID, currency, req.Amount, req.IdempotencyKey)
	if err != nil {
		respondError(c, err, "Failed to request withdrawal", zap.Uint64("userID", userID))
		return
	}

	c.JSON(writeStatus(result.Created), dto.MapWrite(result))
}

func (h *handler) CompleteTransaction(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid transaction ID", err.Error())
		return
	}

	tx, err := h.ledger.CompleteTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to complete transaction", zap.Uint64("transactionID", id))
		return
	}

	c.JSON(http.StatusOK, dto.MapTransaction(tx))
}

func (h *handler) CancelTransaction(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid transaction ID", err.Error())
		return
	}

	tx, err := h.ledger.CancelTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to cancel transaction", zap.Uint64("transactionID", id))
		return
	}

	c.JSON(http.StatusOK, dto.MapTransaction(tx))
}

func (h *handler) ListFarmingProducts(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapFarmingProducts(h.ledger.FarmingProducts()))
}

func (h *handler) DepositToFarming(c *gin.Context) {
	userID, productID, ok := userProductParams(c)
	if !ok {
		return
	}

	var req dto.FarmingDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := h.ledger.DepositToFarming(c.Request.Context(), userID, productID, req.Amount, req.IdempotencyKey)
	if err != nil {
		respondError(c, err, "Failed to deposit to farming", zap.Uint64("userID", userID), zap.String("productID", productID))
		return
	}

	c.JSON(writeStatus(result.Created), dto.MapFarming(result))
}

func (h *handler) CloseFarmingPosition(c *gin.Context) {
	userID, productID, ok := userProductParams(c)
	if !ok {
		return
	}

	var req dto.FarmingCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result, err := h.ledger.CloseFarmingPosition(c.Request.Context(), userID, productID, req.IdempotencyKey)
	if err != nil {
		respondError(c, err, "Failed to close farming position", zap.Uint64("userID", userID), zap.String("productID", productID))
		return
	}

	c.JSON(writeStatus(result.Created), dto.MapFarming(result))
}

func (h *handler) PropagateCommissions(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid transaction ID", err.Error())
		return
	}

	result, err := h.ledger.PropagateCommissions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to propagate commissions", zap.Uint64("transactionID", id))
		return
	}

	c.JSON(http.StatusOK, dto.MapCommissions(result))
}

func (h *handler) GetSchedulerStatus(c *gin.Context) {
	name := c.Param("name")

	status, err := h.health.GetSchedulerHealth(c.Request.Context(), name)
	if err != nil {
		respondError(c, err, "Failed to get scheduler status", zap.String("scheduler", name))
		return
	}
	if status == nil {
		respondNotFound(c, "Scheduler has not run", name)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-yield-ledger-api",
	})
}

// userCurrencyParams parses :user_id and :currency, responding with 400 when either is invalid
func userCurrencyParams(c *gin.Context) (uint64, domain.Currency, bool) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		respondBadRequest(c, "Invalid user ID", err.Error())
		return 0, "", false
	}

	currency, err := domain.ParseCurrency(c.Param("currency"))
	if err != nil {
		respondValidationError(c, err.Error())
		return 0, "", false
	}

	return userID, currency, true
}

// userProductParams parses :user_id and :product_id
func userProductParams(c *gin.Context) (uint64, string, bool) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		respondBadRequest(c, "Invalid user ID", err.Error())
		return 0, "", false
	}

	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		respondValidationError(c, "product_id is required")
		return 0, "", false
	}

	return userID, productID, true
}

// writeStatus is 201 for a new row and 200 when the idempotency key was already used
func writeStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
