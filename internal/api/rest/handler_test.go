package rest_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-yield-ledger/internal/api/apierrors"
	"github.com/feral-file/ff-yield-ledger/internal/api/middleware"
	"github.com/feral-file/ff-yield-ledger/internal/api/rest"
	"github.com/feral-file/ff-yield-ledger/internal/commission"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/ledger"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
	"github.com/feral-file/ff-yield-ledger/internal/store"
	"github.com/feral-file/ff-yield-ledger/internal/store/schema"
	"github.com/feral-file/ff-yield-ledger/internal/sweeper"
)

const apiKeyAuth = "ApiKey svc-key"

var signingKey *rsa.PrivateKey

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	signingKey, err = rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testEnv struct {
	ledger *mocks.MockLedger
	health *mocks.MockHealthReader
	router *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	der, err := x509.MarshalPKIXPublicKey(&signingKey.PublicKey)
	require.NoError(t, err)
	auth := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
		APIKeys:      []string{"svc-key"},
	})

	env := &testEnv{
		ledger: mocks.NewMockLedger(ctrl),
		health: mocks.NewMockHealthReader(ctrl),
		router: gin.New(),
	}
	rest.SetupRoutes(env.router, rest.NewHandler(env.ledger, env.health), auth)
	return env
}

func (e *testEnv) do(method, path, body, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func userAuth(t *testing.T, userID uint64) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprint(userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(signingKey)
	require.NoError(t, err)
	return "Bearer " + token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) apierrors.ErrorCode {
	t.Helper()
	var body apierrors.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	require.NotNil(t, body.Error, w.Body.String())
	return body.Error.Code
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTransaction(id uint64, kind domain.TransactionKind, status domain.TransactionStatus, amount string) *schema.Transaction {
	return &schema.Transaction{
		ID:        id,
		UserID:    42,
		Kind:      kind,
		Currency:  domain.CurrencyTON,
		Amount:    dec(amount),
		Status:    status,
		Metadata:  datatypes.JSON(`{}`),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHealthCheck(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeJSON(t, w)["status"])
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		auth       string
		setup      func(env *testEnv)
		wantStatus int
		wantCode   apierrors.ErrorCode
	}{
		{
			name: "registers with inviter code",
			body: `{"user_id":42,"inviter_code":"INVITER1"}`,
			auth: apiKeyAuth,
			setup: func(env *testEnv) {
				inviter := "INVITER1"
				env.ledger.EXPECT().
					RegisterUser(gomock.Any(), uint64(42), &inviter).
					Return(&schema.User{
						ID:            42,
						ReferralCode:  "REF42",
						InviterCode:   &inviter,
						AncestorChain: datatypes.JSON(`[7,3]`),
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing user id",
			body:       `{"inviter_code":"INVITER1"}`,
			auth:       apiKeyAuth,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeValidationFailed,
		},
		{
			name:       "malformed body",
			body:       `{"user_id":`,
			auth:       apiKeyAuth,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeValidationFailed,
		},
		{
			name:       "user token is not enough",
			body:       `{"user_id":42}`,
			auth:       userAuth(t, 42),
			wantStatus: http.StatusForbidden,
			wantCode:   apierrors.ErrCodeForbidden,
		},
		{
			name:       "unauthenticated",
			body:       `{"user_id":42}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apierrors.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}

			w := env.do(http.MethodPost, "/api/v1/users", tt.body, tt.auth)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}

			body := decodeJSON(t, w)
			assert.Equal(t, "REF42", body["referral_code"])
			assert.Equal(t, []interface{}{float64(7), float64(3)}, body["ancestor_chain"])
		})
	}
}

func TestCreditDeposit(t *testing.T) {
	const body = `{"user_id":42,"currency":"ton","amount":"1.5","idempotency_key":"0xabc","metadata":{"chain":"ton"}}`

	tests := []struct {
		name       string
		body       string
		ledgerErr  error
		created    bool
		wantStatus int
		wantCode   apierrors.ErrorCode
		noCall     bool
	}{
		{name: "created", body: body, created: true, wantStatus: http.StatusCreated},
		{name: "duplicate returns the existing row", body: body, created: false, wantStatus: http.StatusOK},
		{name: "invalid amount", body: body, ledgerErr: fmt.Errorf("%w: too precise", domain.ErrInvalidAmount), wantStatus: http.StatusBadRequest, wantCode: apierrors.ErrCodeValidationFailed},
		{name: "missing key", body: body, ledgerErr: domain.ErrMissingIdempotencyKey, wantStatus: http.StatusBadRequest, wantCode: apierrors.ErrCodeValidationFailed},
		{name: "unknown user", body: body, ledgerErr: domain.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: apierrors.ErrCodeNotFound},
		{name: "key reused for another operation", body: body, ledgerErr: domain.ErrIdempotencyKeyConflict, wantStatus: http.StatusConflict, wantCode: apierrors.ErrCodeConflict},
		{name: "store failure", body: body, ledgerErr: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: apierrors.ErrCodeInternalError},
		{
			name:       "unsupported currency",
			body:       `{"user_id":42,"currency":"btc","amount":"1","idempotency_key":"0xabc"}`,
			noCall:     true,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeValidationFailed,
		},
		{
			name:       "non numeric amount",
			body:       `{"user_id":42,"currency":"ton","amount":"lots","idempotency_key":"0xabc"}`,
			noCall:     true,
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			if !tt.noCall {
				env.ledger.EXPECT().
					CreditExternalDeposit(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, input ledger.CreditDepositInput) (*ledger.CreditResult, error) {
						assert.Equal(t, uint64(42), input.UserID)
						assert.Equal(t, domain.CurrencyTON, input.Currency)
						assert.True(t, dec("1.5").Equal(input.Amount))
						assert.Equal(t, "0xabc", input.IdempotencyKey)
						assert.Equal(t, "ton", input.Metadata["chain"])
						if tt.ledgerErr != nil {
							return nil, tt.ledgerErr
						}
						return &ledger.CreditResult{
							WriteResult: ledger.WriteResult{
								Transaction: testTransaction(7, domain.TransactionKindDeposit, domain.TransactionStatusCompleted, "1.5"),
								Created:     tt.created,
							},
							Commissions: &commission.Result{Created: 2, Credited: []uint64{7, 3}},
						}, nil
					})
			}

			w := env.do(http.MethodPost, "/api/v1/deposits", tt.body, apiKeyAuth)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}

			resp := decodeJSON(t, w)
			assert.Equal(t, tt.created, resp["created"])
			tx := resp["transaction"].(map[string]interface{})
			assert.Equal(t, "1.5", tx["amount"])
			assert.Equal(t, "DEPOSIT", tx["kind"])
			assert.Equal(t, float64(2), resp["commissions"].(map[string]interface{})["created"])
		})
	}
}

func TestGetBalance(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		auth       func(t *testing.T) string
		setup      func(env *testEnv)
		wantStatus int
		wantCode   apierrors.ErrorCode
	}{
		{
			name: "user reads own balance",
			path: "/api/v1/users/42/balances/TON",
			auth: func(t *testing.T) string { return userAuth(t, 42) },
			setup: func(env *testEnv) {
				env.ledger.EXPECT().GetBalance(gomock.Any(), uint64(42), domain.CurrencyTON).Return(dec("12.345"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "service reads any balance",
			path: "/api/v1/users/42/balances/ton",
			auth: func(*testing.T) string { return apiKeyAuth },
			setup: func(env *testEnv) {
				env.ledger.EXPECT().GetBalance(gomock.Any(), uint64(42), domain.CurrencyTON).Return(dec("12.345"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user reads another balance",
			path:       "/api/v1/users/43/balances/TON",
			auth:       func(t *testing.T) string { return userAuth(t, 42) },
			wantStatus: http.StatusForbidden,
			wantCode:   apierrors.ErrCodeForbidden,
		},
		{
			name:       "invalid user id",
			path:       "/api/v1/users/abc/balances/TON",
			auth:       func(*testing.T) string { return apiKeyAuth },
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeBadRequest,
		},
		{
			name:       "unsupported currency",
			path:       "/api/v1/users/42/balances/BTC",
			auth:       func(*testing.T) string { return apiKeyAuth },
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}

			w := env.do(http.MethodGet, tt.path, "", tt.auth(t))
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}

			body := decodeJSON(t, w)
			assert.Equal(t, "12.345", body["balance"])
			assert.Equal(t, "TON", body["currency"])
		})
	}
}

func TestReconcileBalance(t *testing.T) {
	env := setupTestEnv(t)
	env.ledger.EXPECT().
		Audit(gomock.Any(), uint64(42), domain.CurrencyUNI).
		Return(&ledger.AuditResult{
			UserID:       42,
			Currency:     domain.CurrencyUNI,
			Materialized: dec("3"),
			Ledger:       dec("2"),
			Diverged:     true,
		}, nil)

	w := env.do(http.MethodGet, "/api/v1/users/42/balances/UNI/reconcile", "", apiKeyAuth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["diverged"])
	assert.Equal(t, "3", body["materialized"])
	assert.Equal(t, "2", body["ledger"])

	// Users cannot trigger audits
	w = env.do(http.MethodGet, "/api/v1/users/42/balances/UNI/reconcile", "", userAuth(t, 42))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListTransactions(t *testing.T) {
	t.Run("filters and caps the page size", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.TransactionFilter) ([]schema.Transaction, uint64, error) {
				require.NotNil(t, filter.UserID)
				assert.Equal(t, uint64(42), *filter.UserID)
				assert.Equal(t, []domain.TransactionKind{domain.TransactionKindDeposit, domain.TransactionKindCommission}, filter.Kinds)
				require.NotNil(t, filter.Status)
				assert.Equal(t, domain.TransactionStatusCompleted, *filter.Status)
				require.NotNil(t, filter.Currency)
				assert.Equal(t, domain.CurrencyTON, *filter.Currency)
				assert.Equal(t, rest.MAX_PAGE_SIZE, filter.Limit)
				assert.Equal(t, uint64(5), filter.Offset)
				return []schema.Transaction{
					*testTransaction(1, domain.TransactionKindDeposit, domain.TransactionStatusCompleted, "10"),
					*testTransaction(2, domain.TransactionKindCommission, domain.TransactionStatusCompleted, "0.1"),
				}, 7, nil
			})

		w := env.do(http.MethodGet,
			"/api/v1/users/42/transactions?currency=ton&kind=deposit&kind=COMMISSION&status=completed&limit=500&offset=5",
			"", userAuth(t, 42))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeJSON(t, w)
		assert.Equal(t, float64(7), body["total"])
		assert.Equal(t, float64(rest.MAX_PAGE_SIZE), body["limit"])
		assert.Len(t, body["transactions"], 2)
	})

	t.Run("defaults", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.TransactionFilter) ([]schema.Transaction, uint64, error) {
				assert.Equal(t, rest.DEFAULT_PAGE_SIZE, filter.Limit)
				assert.Nil(t, filter.Currency)
				assert.Empty(t, filter.Kinds)
				return nil, 0, nil
			})

		w := env.do(http.MethodGet, "/api/v1/users/42/transactions", "", apiKeyAuth)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, []interface{}{}, decodeJSON(t, w)["transactions"])
	})

	for _, query := range []string{"kind=TRANSFER", "status=done", "currency=btc", "limit=abc"} {
		t.Run("rejects "+query, func(t *testing.T) {
			env := setupTestEnv(t)
			w := env.do(http.MethodGet, "/api/v1/users/42/transactions?"+query, "", apiKeyAuth)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, apierrors.ErrCodeValidationFailed, errorCode(t, w))
		})
	}
}

func TestRequestWithdrawal(t *testing.T) {
	const body = `{"currency":"TON","amount":"0.6","idempotency_key":"wd-1"}`

	t.Run("creates a pending withdrawal", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			RequestWithdrawal(gomock.Any(), uint64(42), domain.CurrencyTON, gomock.Any(), "wd-1").
			DoAndReturn(func(_ context.Context, _ uint64, _ domain.Currency, amount decimal.Decimal, _ string) (*ledger.WriteResult, error) {
				assert.True(t, dec("0.6").Equal(amount))
				return &ledger.WriteResult{
					Transaction: testTransaction(9, domain.TransactionKindWithdrawal, domain.TransactionStatusPending, "-0.6"),
					Created:     true,
				}, nil
			})

		w := env.do(http.MethodPost, "/api/v1/users/42/withdrawals", body, userAuth(t, 42))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		tx := decodeJSON(t, w)["transaction"].(map[string]interface{})
		assert.Equal(t, "pending", tx["status"])
		assert.Equal(t, "-0.6", tx["amount"])
	})

	t.Run("insufficient balance", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			RequestWithdrawal(gomock.Any(), uint64(42), domain.CurrencyTON, gomock.Any(), "wd-1").
			Return(nil, fmt.Errorf("%w: available 0.4", domain.ErrInsufficientBalance))

		w := env.do(http.MethodPost, "/api/v1/users/42/withdrawals", body, userAuth(t, 42))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.Equal(t, apierrors.ErrCodeInsufficientBalance, errorCode(t, w))
	})

	t.Run("services cannot withdraw for users", func(t *testing.T) {
		env := setupTestEnv(t)
		w := env.do(http.MethodPost, "/api/v1/users/42/withdrawals", body, apiKeyAuth)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing currency", func(t *testing.T) {
		env := setupTestEnv(t)
		w := env.do(http.MethodPost, "/api/v1/users/42/withdrawals", `{"amount":"1"}`, userAuth(t, 42))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, errorCode(t, w))
	})
}

func TestTransactionStateChanges(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		err        error
		wantStatus int
		wantCode   apierrors.ErrorCode
	}{
		{name: "complete", action: "complete", wantStatus: http.StatusOK},
		{name: "cancel", action: "cancel", wantStatus: http.StatusOK},
		{name: "complete unknown", action: "complete", err: domain.ErrTransactionNotFound, wantStatus: http.StatusNotFound, wantCode: apierrors.ErrCodeNotFound},
		{name: "cancel completed", action: "cancel", err: domain.ErrInvalidTransactionState, wantStatus: http.StatusConflict, wantCode: apierrors.ErrCodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)

			var tx *schema.Transaction
			if tt.err == nil {
				status := domain.TransactionStatusCompleted
				if tt.action == "cancel" {
					status = domain.TransactionStatusCancelled
				}
				tx = testTransaction(9, domain.TransactionKindWithdrawal, status, "-0.6")
			}

			if tt.action == "complete" {
				env.ledger.EXPECT().CompleteTransaction(gomock.Any(), uint64(9)).Return(tx, tt.err)
			} else {
				env.ledger.EXPECT().CancelTransaction(gomock.Any(), uint64(9)).Return(tx, tt.err)
			}

			w := env.do(http.MethodPost, "/api/v1/transactions/9/"+tt.action, "", apiKeyAuth)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
				return
			}
			assert.Equal(t, string(tx.Status), decodeJSON(t, w)["status"])
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		env := setupTestEnv(t)
		w := env.do(http.MethodPost, "/api/v1/transactions/0/complete", "", apiKeyAuth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFarming(t *testing.T) {
	position := &schema.FarmingPosition{
		ID:            3,
		UserID:        42,
		ProductID:     "ton-boost-1",
		Currency:      domain.CurrencyTON,
		DepositAmount: dec("100"),
		Rate:          dec("0.01"),
		LastAccrualAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:        true,
	}

	t.Run("products", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().FarmingProducts().Return([]domain.FarmingProduct{
			{ID: "ton-boost-1", Name: "Starter Boost", Currency: domain.CurrencyTON, DailyRate: dec("0.01"), MinAmount: dec("10")},
		})

		w := env.do(http.MethodGet, "/api/v1/farming/products", "", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var products []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 1)
		assert.Equal(t, "ton-boost-1", products[0]["id"])
		assert.Equal(t, "TON", products[0]["currency"])
		assert.Equal(t, "0.01", products[0]["daily_rate"])
		assert.Equal(t, "10", products[0]["min_amount"])
	})

	t.Run("deposit", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			DepositToFarming(gomock.Any(), uint64(42), "ton-boost-1", gomock.Any(), "farm-1").
			Return(&ledger.FarmingResult{
				WriteResult: ledger.WriteResult{
					Transaction: testTransaction(11, domain.TransactionKindPurchase, domain.TransactionStatusCompleted, "-100"),
					Created:     true,
				},
				Position: position,
			}, nil)

		w := env.do(http.MethodPost, "/api/v1/users/42/farming/ton-boost-1/deposit", `{"amount":"100","idempotency_key":"farm-1"}`, userAuth(t, 42))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeJSON(t, w)
		pos := body["position"].(map[string]interface{})
		assert.Equal(t, "100", pos["deposit_amount"])
		assert.Equal(t, "ton-boost-1", pos["product_id"])
		assert.Equal(t, true, pos["active"])
		assert.Nil(t, body["settled"])
	})

	t.Run("deposit below product minimum", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			DepositToFarming(gomock.Any(), uint64(42), "ton-boost-5", gomock.Any(), "farm-1").
			Return(nil, fmt.Errorf("%w: ton-boost-5 requires at least 1000 TON", domain.ErrBelowMinimumAmount))

		w := env.do(http.MethodPost, "/api/v1/users/42/farming/ton-boost-5/deposit", `{"amount":"10","idempotency_key":"farm-1"}`, userAuth(t, 42))
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Equal(t, apierrors.ErrCodeValidationFailed, errorCode(t, w))
	})

	t.Run("deposit into unknown product", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			DepositToFarming(gomock.Any(), uint64(42), "ton-boost-9", gomock.Any(), "farm-1").
			Return(nil, domain.ErrUnknownFarmingProduct)

		w := env.do(http.MethodPost, "/api/v1/users/42/farming/ton-boost-9/deposit", `{"amount":"10","idempotency_key":"farm-1"}`, userAuth(t, 42))
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
		assert.Equal(t, apierrors.ErrCodeNotFound, errorCode(t, w))
	})

	t.Run("close settles and refunds", func(t *testing.T) {
		env := setupTestEnv(t)
		closed := *position
		closed.Active = false
		closed.DepositAmount = decimal.Zero

		env.ledger.EXPECT().
			CloseFarmingPosition(gomock.Any(), uint64(42), "ton-boost-1", "close-1").
			Return(&ledger.FarmingResult{
				WriteResult: ledger.WriteResult{
					Transaction: testTransaction(12, domain.TransactionKindRefund, domain.TransactionStatusCompleted, "100"),
					Created:     true,
				},
				Position: &closed,
				Settled:  testTransaction(13, domain.TransactionKindYieldReward, domain.TransactionStatusCompleted, "0.5"),
			}, nil)

		w := env.do(http.MethodPost, "/api/v1/users/42/farming/ton-boost-1/close", `{"idempotency_key":"close-1"}`, userAuth(t, 42))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeJSON(t, w)
		assert.Equal(t, "0.5", body["settled"].(map[string]interface{})["amount"])
		assert.Equal(t, false, body["position"].(map[string]interface{})["active"])
	})

	t.Run("close without position", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			CloseFarmingPosition(gomock.Any(), uint64(42), "ton-boost-1", "close-1").
			Return(nil, domain.ErrPositionNotFound)

		w := env.do(http.MethodPost, "/api/v1/users/42/farming/ton-boost-1/close", `{"idempotency_key":"close-1"}`, userAuth(t, 42))
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apierrors.ErrCodeNotFound, errorCode(t, w))
	})
}

func TestPropagateCommissions(t *testing.T) {
	t.Run("re-runs propagation", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			PropagateCommissions(gomock.Any(), uint64(5)).
			Return(&commission.Result{Created: 1, Existing: 1, Credited: []uint64{3}}, nil)

		w := env.do(http.MethodPost, "/api/v1/transactions/5/commissions/propagate", "", apiKeyAuth)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeJSON(t, w)
		assert.Equal(t, float64(1), body["created"])
		assert.Equal(t, float64(1), body["existing"])
	})

	t.Run("source does not produce commissions", func(t *testing.T) {
		env := setupTestEnv(t)
		env.ledger.EXPECT().
			PropagateCommissions(gomock.Any(), uint64(5)).
			Return(nil, domain.ErrNotPropagatable)

		w := env.do(http.MethodPost, "/api/v1/transactions/5/commissions/propagate", "", apiKeyAuth)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apierrors.ErrCodeInvalidState, errorCode(t, w))
	})
}

func TestGetSchedulerStatus(t *testing.T) {
	t.Run("reports the last tick", func(t *testing.T) {
		env := setupTestEnv(t)
		env.health.EXPECT().
			GetSchedulerHealth(gomock.Any(), sweeper.AccrualSweeperName).
			Return(&sweeper.SchedulerHealth{Name: sweeper.AccrualSweeperName, LastTickID: "01JTICK", TotalTicks: 4}, nil)

		w := env.do(http.MethodGet, "/api/v1/scheduler/accrual/status", "", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "accrual", decodeJSON(t, w)["name"])
	})

	t.Run("never ran", func(t *testing.T) {
		env := setupTestEnv(t)
		env.health.EXPECT().GetSchedulerHealth(gomock.Any(), "reconciliation").Return(nil, nil)

		w := env.do(http.MethodGet, "/api/v1/scheduler/reconciliation/status", "", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apierrors.ErrCodeNotFound, errorCode(t, w))
	})

	t.Run("store failure", func(t *testing.T) {
		env := setupTestEnv(t)
		env.health.EXPECT().GetSchedulerHealth(gomock.Any(), "accrual").Return(nil, errors.New("db down"))

		w := env.do(http.MethodGet, "/api/v1/scheduler/accrual/status", "", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
