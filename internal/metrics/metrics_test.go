package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-yield-ledger/internal/metrics"
)

func TestCountersAreExposed(t *testing.T) {
	before := testutil.ToFloat64(metrics.BalanceDivergenceTotal.WithLabelValues("TON"))
	metrics.BalanceDivergenceTotal.WithLabelValues("TON").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.BalanceDivergenceTotal.WithLabelValues("TON")), 0.0001)

	srv := metrics.NewServer(":0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_balance_divergence_total")
}
