package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Accrual outcomes
const (
	OutcomeAccrued = "accrued"
	OutcomeSkipped = "skipped"
	OutcomeLocked  = "locked"
	OutcomeFailed  = "failed"
)

var (
	LedgerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Ledger rows written, by kind and currency",
	}, []string{"kind", "currency"})

	LedgerDuplicatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_duplicate_submissions_total",
		Help: "Writes answered with an existing row because the idempotency key was already used",
	}, []string{"kind"})

	LedgerFlaggedKeysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_flagged_idempotency_keys_total",
		Help: "External writes accepted with a key that is not a transaction hash",
	})

	BalanceDivergenceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_balance_divergence_total",
		Help: "Audits that found the materialized balance differing from the ledger",
	}, []string{"currency"})

	CommissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_commissions_total",
		Help: "Commission rows created, by level",
	}, []string{"level"})

	AccrualTickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_accrual_tick_duration_seconds",
		Help:    "Duration of a full accrual tick",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
	})

	AccrualPositionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_accrual_positions_total",
		Help: "Positions visited by the accrual scheduler, by outcome",
	}, []string{"outcome"})

	ReconciliationRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_reconciliation_balances_total",
		Help: "Balances audited by the reconciliation sweeper, by result",
	}, []string{"result"})

	DepositEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_deposit_events_total",
		Help: "Deposit-confirmed messages handled by the bridge, by result",
	}, []string{"result"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "route"})
)

// ObserveAccrualTick records a finished tick
func ObserveAccrualTick(d time.Duration) {
	AccrualTickDuration.Observe(d.Seconds())
}

// Handler returns the prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// NewServer returns a listener serving /metrics, for binaries without an HTTP API
func NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
