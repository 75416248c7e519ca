package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-yield-ledger/internal/api/middleware"
	"github.com/feral-file/ff-yield-ledger/internal/api/rest"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	serviceKey := "ApiKey route-key"

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		expect     func(h *mocks.MockAPIHandler)
		wantStatus int
	}{
		{
			name:       "health is public",
			method:     http.MethodGet,
			path:       "/health",
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().HealthCheck(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "scheduler status is public",
			method:     http.MethodGet,
			path:       "/api/v1/scheduler/accrual/status",
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().GetSchedulerStatus(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "register user with api key",
			method:     http.MethodPost,
			path:       "/api/v1/users",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().RegisterUser(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "deposit without credentials",
			method:     http.MethodPost,
			path:       "/api/v1/deposits",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "deposit with api key",
			method:     http.MethodPost,
			path:       "/api/v1/deposits",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().CreditDeposit(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "complete transaction",
			method:     http.MethodPost,
			path:       "/api/v1/transactions/7/complete",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().CompleteTransaction(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "cancel transaction",
			method:     http.MethodPost,
			path:       "/api/v1/transactions/7/cancel",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().CancelTransaction(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "propagate commissions",
			method:     http.MethodPost,
			path:       "/api/v1/transactions/7/commissions/propagate",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().PropagateCommissions(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "reconcile",
			method:     http.MethodGet,
			path:       "/api/v1/users/1/balances/TON/reconcile",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().ReconcileBalance(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "balance with api key",
			method:     http.MethodGet,
			path:       "/api/v1/users/1/balances/TON",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().GetBalance(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "transactions with api key",
			method:     http.MethodGet,
			path:       "/api/v1/users/1/transactions",
			header:     serviceKey,
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().ListTransactions(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "withdrawal rejects api key",
			method:     http.MethodPost,
			path:       "/api/v1/users/1/withdrawals",
			header:     serviceKey,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "farming deposit rejects api key",
			method:     http.MethodPost,
			path:       "/api/v1/users/1/farming/ton-boost-1/deposit",
			header:     serviceKey,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "farming close requires credentials",
			method:     http.MethodPost,
			path:       "/api/v1/users/1/farming/ton-boost-1/close",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "farming products are public",
			method:     http.MethodGet,
			path:       "/api/v1/farming/products",
			expect:     func(h *mocks.MockAPIHandler) { h.EXPECT().ListFarmingProducts(gomock.Any()).Do(ok) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/v1/unknown",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			handler := mocks.NewMockAPIHandler(ctrl)
			if tt.expect != nil {
				tt.expect(handler)
			}

			router := gin.New()
			rest.SetupRoutes(router, handler, middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"route-key"}}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
