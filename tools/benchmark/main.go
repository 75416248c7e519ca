package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-yield-ledger/internal/adapter"
	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/messaging"
	"github.com/feral-file/ff-yield-ledger/internal/providers/jetstream"
)

const (
	defaultNatsURL      = "nats://localhost:4222"
	defaultStreamName   = "LEDGER"
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "ff-yield-ledger"
	commissionWorkflow  = "PropagateCommissions"
	pollInterval        = 2 * time.Second
)

type Config struct {
	NatsURL      string
	StreamName   string
	TemporalHost string
	Namespace    string
	Currency     string
	Amount       string
	UserFrom     uint64
	UserTo       uint64
	Count        int
	Concurrency  int
	Wait         time.Duration // How long to wait for commission workflows (0 = skip)
	OutputFile   string        // Output markdown file path (optional)
	SaveConfig   string
}

// PublishStats summarizes the publishing phase
type PublishStats struct {
	RunID     string
	Currency  domain.Currency
	Amount    decimal.Decimal
	Total     int
	Published int
	Failed    int
	StartTime time.Time
	Duration  time.Duration
	Latencies []time.Duration
	Errors    map[string]int
}

// CommissionStats summarizes the commission workflows started after the run began
type CommissionStats struct {
	Total         int
	Running       int
	Completed     int
	Failed        int
	Terminated    int
	TimedOut      int
	Canceled      int
	FirstStart    time.Time
	LastEnd       *time.Time
	TotalDuration time.Duration
	Durations     []time.Duration
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NatsURL,
		StreamName:     cfg.StreamName,
		MaxReconnects:  5,
		ReconnectWait:  2 * time.Second,
		ConnectionName: "ff-yield-ledger-benchmark",
		PublishRetries: 3,
	}, adapter.NewNatsJetStream())
	if err != nil {
		fmt.Printf("Error connecting to NATS: %v\n", err)
		os.Exit(1)
	}
	defer publisher.Close()

	fmt.Printf("Connected to NATS at %s (stream: %s)\n", cfg.NatsURL, cfg.StreamName)
	fmt.Printf("Publishing %d %s deposits of %s for users %d..%d with %d workers\n",
		cfg.Count, cfg.Currency, cfg.Amount, cfg.UserFrom, cfg.UserTo, cfg.Concurrency)

	pubStats := publishDeposits(ctx, publisher, cfg)

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("PUBLISH RESULTS")
	fmt.Println(strings.Repeat("=", 80))
	printPublishStats(pubStats)

	var commStats *CommissionStats
	if cfg.Wait > 0 && ctx.Err() == nil {
		c, err := client.Dial(client.Options{
			HostPort:  cfg.TemporalHost,
			Namespace: cfg.Namespace,
		})
		if err != nil {
			fmt.Printf("Error creating Temporal client: %v\n", err)
			os.Exit(1)
		}
		defer c.Close()

		fmt.Printf("\nConnected to Temporal at %s (namespace: %s)\n", cfg.TemporalHost, cfg.Namespace)
		commStats = waitForCommissions(ctx, c, pubStats.StartTime, cfg.Wait)

		fmt.Println("\n\n" + strings.Repeat("=", 80))
		fmt.Println("COMMISSION WORKFLOWS")
		fmt.Println(strings.Repeat("=", 80))
		printCommissionStats(commStats)
	}

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, pubStats, commStats); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}
}

func parseFlags() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.NatsURL, "nats-url", defaultNatsURL, "NATS server URL")
	flag.StringVar(&cfg.StreamName, "stream", defaultStreamName, "JetStream stream name")
	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal host address")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.StringVar(&cfg.Currency, "currency", string(domain.CurrencyTON), "Deposit currency")
	flag.StringVar(&cfg.Amount, "amount", "1", "Amount of each deposit")
	flag.Uint64Var(&cfg.UserFrom, "user-from", 1, "First user ID receiving deposits")
	flag.Uint64Var(&cfg.UserTo, "user-to", 1, "Last user ID receiving deposits")
	flag.IntVar(&cfg.Count, "count", 100, "Number of deposits to publish")
	flag.IntVar(&cfg.Concurrency, "concurrency", 10, "Number of concurrent publishers")
	flag.DurationVar(&cfg.Wait, "wait", 0, "How long to wait for commission workflows (0 = skip)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.StringVar(&cfg.SaveConfig, "save-config", "", "Write connection settings to this file and exit")

	configFile := flag.String("config", "", "Path to config file (optional)")

	flag.Parse()

	if *configFile != "" {
		fileCfg, err := LoadConfig(*configFile)
		if err != nil {
			fmt.Printf("Warning: failed to load config file: %v\n", err)
		} else {
			applyFileConfig(cfg, fileCfg)
		}
	}

	if cfg.SaveConfig != "" {
		if err := SaveConfig(cfg.SaveConfig, &BenchmarkConfig{
			NatsURL:      cfg.NatsURL,
			StreamName:   cfg.StreamName,
			TemporalHost: cfg.TemporalHost,
			Namespace:    cfg.Namespace,
		}); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("✓ Config written to: %s\n", cfg.SaveConfig)
		os.Exit(0)
	}

	return cfg, validateConfig(cfg)
}

// applyFileConfig overrides flag defaults with file values
func applyFileConfig(cfg *Config, fileCfg *BenchmarkConfig) {
	if cfg.NatsURL == defaultNatsURL && fileCfg.NatsURL != "" {
		cfg.NatsURL = fileCfg.NatsURL
	}
	if cfg.StreamName == defaultStreamName && fileCfg.StreamName != "" {
		cfg.StreamName = fileCfg.StreamName
	}
	if cfg.TemporalHost == defaultTemporalHost && fileCfg.TemporalHost != "" {
		cfg.TemporalHost = fileCfg.TemporalHost
	}
	if cfg.Namespace == defaultNamespace && fileCfg.Namespace != "" {
		cfg.Namespace = fileCfg.Namespace
	}
}

func validateConfig(cfg *Config) error {
	if _, err := domain.ParseCurrency(cfg.Currency); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(cfg.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", cfg.Amount, err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", cfg.Amount)
	}
	if cfg.UserFrom == 0 || cfg.UserTo < cfg.UserFrom {
		return fmt.Errorf("invalid user range %d..%d", cfg.UserFrom, cfg.UserTo)
	}
	if cfg.Count <= 0 {
		return errors.New("count must be positive")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Concurrency > 100 {
		cfg.Concurrency = 100
	}
	return nil
}

// buildDepositEvent returns the i-th deposit of a run. Users are cycled through the range and
// the key is a deterministic 64-char hex hash so it is never flagged as weak.
func buildDepositEvent(runID string, i int, cfg *Config) *domain.DepositConfirmedEvent {
	span := cfg.UserTo - cfg.UserFrom + 1
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", runID, i)))
	currency, _ := domain.ParseCurrency(cfg.Currency)

	return &domain.DepositConfirmedEvent{
		UserID:         cfg.UserFrom + uint64(i)%span,
		Currency:       currency,
		Amount:         decimal.RequireFromString(cfg.Amount),
		IdempotencyKey: hex.EncodeToString(sum[:]),
		Metadata: map[string]interface{}{
			"source":    "benchmark",
			"run_id":    runID,
			"sequence":  i,
			"generated": time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func publishDeposits(ctx context.Context, publisher messaging.Publisher, cfg *Config) *PublishStats {
	currency, _ := domain.ParseCurrency(cfg.Currency)
	stats := &PublishStats{
		RunID:     ulid.Make().String(),
		Currency:  currency,
		Amount:    decimal.RequireFromString(cfg.Amount),
		Total:     cfg.Count,
		StartTime: time.Now(),
		Errors:    make(map[string]int),
	}

	var mu sync.Mutex
	pool := pond.NewPool(cfg.Concurrency, pond.WithContext(ctx))

	for i := 0; i < cfg.Count; i++ {
		event := buildDepositEvent(stats.RunID, i, cfg)
		pool.Submit(func() {
			start := time.Now()
			err := publisher.PublishDepositConfirmed(ctx, event)
			latency := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				stats.Errors[err.Error()]++
				return
			}
			stats.Published++
			stats.Latencies = append(stats.Latencies, latency)
			if stats.Published%100 == 0 {
				fmt.Printf("\r⏳ Published %d/%d", stats.Published, stats.Total)
			}
		})
	}

	pool.StopAndWait()
	stats.Duration = time.Since(stats.StartTime)
	// Tasks skipped after cancellation count as failed
	if skipped := stats.Total - stats.Published - stats.Failed; skipped > 0 {
		stats.Failed += skipped
		stats.Errors[context.Canceled.Error()] += skipped
	}
	return stats
}

// waitForCommissions polls the commission workflows started since the run began until none
// are running or the wait elapses
func waitForCommissions(ctx context.Context, c client.Client, since time.Time, wait time.Duration) *CommissionStats {
	deadline := time.Now().Add(wait)
	var lastStats *CommissionStats
	pollCount := 0

	for {
		pollCount++
		executions, err := listCommissionWorkflows(ctx, c, since)
		if err != nil {
			fmt.Printf("\nError listing workflows: %v\n", err)
			if lastStats != nil {
				return lastStats
			}
			return &CommissionStats{}
		}

		lastStats = summarizeExecutions(executions, time.Now())
		if lastStats.Total > 0 && lastStats.Running == 0 {
			fmt.Printf("\r✓ Collection complete (polls: %d, workflows: %d)                    \n", pollCount, lastStats.Total)
			return lastStats
		}
		fmt.Printf("\r⏳ Polling... (polls: %d, workflows: %d, running: %d)    ", pollCount, lastStats.Total, lastStats.Running)

		if time.Now().After(deadline) {
			fmt.Println("\n⚠️  Wait elapsed before all workflows closed")
			return lastStats
		}

		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			fmt.Println("\nINTERRUPTED - PARTIAL RESULTS")
			return lastStats
		case <-timer.C:
		}
	}
}

func listCommissionWorkflows(ctx context.Context, c client.Client, since time.Time) ([]*workflowpb.WorkflowExecutionInfo, error) {
	query := fmt.Sprintf("WorkflowType = '%s' AND StartTime >= '%s'", commissionWorkflow, since.UTC().Format(time.RFC3339))

	var executions []*workflowpb.WorkflowExecutionInfo
	var nextPageToken []byte
	for {
		resp, err := c.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
			Query:         query,
			PageSize:      1000,
			NextPageToken: nextPageToken,
		})
		if err != nil {
			return nil, err
		}
		executions = append(executions, resp.Executions...)
		nextPageToken = resp.NextPageToken
		if len(nextPageToken) == 0 {
			return executions, nil
		}
	}
}

func summarizeExecutions(executions []*workflowpb.WorkflowExecutionInfo, now time.Time) *CommissionStats {
	stats := &CommissionStats{}
	for _, exec := range executions {
		stats.Total++
		switch exec.GetStatus() {
		case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
			stats.Running++
		case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
			stats.Completed++
		case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
			stats.Failed++
		case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
			stats.Terminated++
		case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
			stats.TimedOut++
		case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
			stats.Canceled++
		}

		if exec.GetStartTime() == nil {
			continue
		}
		start := exec.GetStartTime().AsTime()
		if stats.FirstStart.IsZero() || start.Before(stats.FirstStart) {
			stats.FirstStart = start
		}

		if !isWorkflowComplete(exec.GetStatus()) || exec.GetCloseTime() == nil {
			continue
		}
		end := exec.GetCloseTime().AsTime()
		stats.Durations = append(stats.Durations, end.Sub(start))
		if stats.LastEnd == nil || end.After(*stats.LastEnd) {
			stats.LastEnd = &end
		}
	}

	if !stats.FirstStart.IsZero() {
		end := now
		if stats.Running == 0 && stats.LastEnd != nil {
			end = *stats.LastEnd
		}
		stats.TotalDuration = end.Sub(stats.FirstStart)
	}
	return stats
}

// percentile returns the p-th percentile (0..100) using nearest rank
func percentile(durations []time.Duration, p float64) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := int(p/100*float64(len(sorted))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

func printPublishStats(stats *PublishStats) {
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Run ID:      %s\n", stats.RunID)
	fmt.Printf("Deposit:     %s %s\n", stats.Amount.String(), stats.Currency)
	fmt.Printf("Total:       %d\n", stats.Total)
	fmt.Printf("Published:   %d (%s)\n", stats.Published, share(stats.Published, stats.Total))
	if stats.Failed > 0 {
		fmt.Printf("Failed:      %d (%s)\n", stats.Failed, share(stats.Failed, stats.Total))
		for msg, n := range stats.Errors {
			fmt.Printf("  %5d  %s\n", n, msg)
		}
	}
	fmt.Printf("Duration:    %s\n", formatDuration(stats.Duration))
	fmt.Printf("Rate:        %s\n", perSecond(stats.Published, stats.Duration, "deposits"))
	if len(stats.Latencies) > 0 {
		fmt.Printf("Latency p50: %s\n", formatDuration(percentile(stats.Latencies, 50)))
		fmt.Printf("Latency p95: %s\n", formatDuration(percentile(stats.Latencies, 95)))
		fmt.Printf("Latency p99: %s\n", formatDuration(percentile(stats.Latencies, 99)))
	}
	fmt.Println(strings.Repeat("-", 80))
}

func printCommissionStats(stats *CommissionStats) {
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("  %s %s\n", statusLabel(stats.overallStatus()), commissionWorkflow)
	fmt.Printf("    Count:          %d\n", stats.Total)
	fmt.Printf("    Completed:      %d (%s)\n", stats.Completed, share(stats.Completed, stats.Total))
	for _, row := range stats.breakdown() {
		fmt.Printf("    %-15s %d (%s)\n", row.label+":", row.count, share(row.count, stats.Total))
	}
	if stats.Total == 0 {
		fmt.Println("    No commission workflows found.")
		fmt.Println(strings.Repeat("-", 80))
		return
	}
	fmt.Printf("    First Start:    %s\n", stats.FirstStart.Format("15:04:05"))
	if stats.LastEnd != nil {
		fmt.Printf("    Last End:       %s\n", stats.LastEnd.Format("15:04:05"))
	}
	fmt.Printf("    Total Duration: %s\n", formatDuration(stats.TotalDuration))
	if stats.TotalDuration > 0 {
		fmt.Printf("    Avg Rate:       %s\n", perSecond(stats.Total-stats.Running, stats.TotalDuration, "workflows"))
	}
	if len(stats.Durations) > 0 {
		fmt.Printf("    p50 Run:        %s\n", formatDuration(percentile(stats.Durations, 50)))
		fmt.Printf("    p95 Run:        %s\n", formatDuration(percentile(stats.Durations, 95)))
	}
	fmt.Println(strings.Repeat("-", 80))
}

type statusCount struct {
	label string
	count int
}

// breakdown lists the non-zero statuses other than completed
func (s *CommissionStats) breakdown() []statusCount {
	var rows []statusCount
	for _, row := range []statusCount{
		{"Running", s.Running},
		{"Failed", s.Failed},
		{"Terminated", s.Terminated},
		{"Timed Out", s.TimedOut},
		{"Canceled", s.Canceled},
	} {
		if row.count > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func formatStatus(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "🟡 RUNNING"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "✅ COMPLETED"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "❌ FAILED"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "🚫 CANCELED"
	case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "⛔ TERMINATED"
	case enums.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW:
		return "🔄 CONTINUED_AS_NEW"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "⏱️ TIMED_OUT"
	default:
		return status.String()
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// share formats part as a percentage of total
func share(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// perSecond formats a throughput such as "12.50 deposits/s"
func perSecond(count int, d time.Duration, unit string) string {
	if d <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f %s/s", float64(count)/d.Seconds(), unit)
}

func isWorkflowComplete(status enums.WorkflowExecutionStatus) bool {
	return status != enums.WORKFLOW_EXECUTION_STATUS_RUNNING
}

// overallStatus reduces a commission summary to a single workflow status for the report header
func (s *CommissionStats) overallStatus() enums.WorkflowExecutionStatus {
	switch {
	case s.Running > 0:
		return enums.WORKFLOW_EXECUTION_STATUS_RUNNING
	case s.Failed > 0:
		return enums.WORKFLOW_EXECUTION_STATUS_FAILED
	case s.TimedOut > 0:
		return enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT
	case s.Terminated > 0:
		return enums.WORKFLOW_EXECUTION_STATUS_TERMINATED
	case s.Canceled > 0:
		return enums.WORKFLOW_EXECUTION_STATUS_CANCELED
	case s.Completed > 0:
		return enums.WORKFLOW_EXECUTION_STATUS_COMPLETED
	default:
		return enums.WORKFLOW_EXECUTION_STATUS_UNSPECIFIED
	}
}

// writeMarkdownReport writes a markdown report of the run
func writeMarkdownReport(filepath string, pub *PublishStats, comm *CommissionStats) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	_, _ = fmt.Fprintf(file, "# Deposit Benchmark Report\n\n")
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	_, _ = fmt.Fprintf(file, "## Publishing\n\n")
	_, _ = fmt.Fprintf(file, "| Metric | Value |\n")
	_, _ = fmt.Fprintf(file, "|--------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Run ID** | `%s` |\n", pub.RunID)
	_, _ = fmt.Fprintf(file, "| **Deposit** | %s %s |\n", pub.Amount.String(), pub.Currency)
	_, _ = fmt.Fprintf(file, "| **Total** | %d |\n", pub.Total)
	_, _ = fmt.Fprintf(file, "| **Published** | %d (%s) |\n", pub.Published, share(pub.Published, pub.Total))
	if pub.Failed > 0 {
		_, _ = fmt.Fprintf(file, "| **Failed** | %d (%s) |\n", pub.Failed, share(pub.Failed, pub.Total))
	}
	_, _ = fmt.Fprintf(file, "| **Duration** | %s |\n", formatDuration(pub.Duration))
	_, _ = fmt.Fprintf(file, "| **Rate** | %s |\n", perSecond(pub.Published, pub.Duration, "deposits"))
	if len(pub.Latencies) > 0 {
		_, _ = fmt.Fprintf(file, "| **Latency p50** | %s |\n", formatDuration(percentile(pub.Latencies, 50)))
		_, _ = fmt.Fprintf(file, "| **Latency p95** | %s |\n", formatDuration(percentile(pub.Latencies, 95)))
	}
	_, _ = fmt.Fprintf(file, "\n")

	if comm == nil {
		_, _ = fmt.Fprintf(file, "*Commission workflows were not collected.*\n")
		return nil
	}

	_, _ = fmt.Fprintf(file, "## %s Workflows\n\n", commissionWorkflow)
	_, _ = fmt.Fprintf(file, "| Metric | Value |\n")
	_, _ = fmt.Fprintf(file, "|--------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Status** | %s |\n", statusLabel(comm.overallStatus()))
	_, _ = fmt.Fprintf(file, "| **Count** | %d |\n", comm.Total)
	_, _ = fmt.Fprintf(file, "| **Completed** | %d (%s) |\n", comm.Completed, share(comm.Completed, comm.Total))
	for _, row := range comm.breakdown() {
		_, _ = fmt.Fprintf(file, "| **%s** | %d (%s) |\n", row.label, row.count, share(row.count, comm.Total))
	}
	if comm.Total > 0 {
		_, _ = fmt.Fprintf(file, "| **First Start** | %s |\n", comm.FirstStart.Format("15:04:05"))
	}
	if comm.LastEnd != nil {
		_, _ = fmt.Fprintf(file, "| **Last End** | %s |\n", comm.LastEnd.Format("15:04:05"))
	}
	_, _ = fmt.Fprintf(file, "| **Total Duration** | %s |\n", formatDuration(comm.TotalDuration))
	if len(comm.Durations) > 0 {
		_, _ = fmt.Fprintf(file, "| **p50 Run** | %s |\n", formatDuration(percentile(comm.Durations, 50)))
		_, _ = fmt.Fprintf(file, "| **p95 Run** | %s |\n", formatDuration(percentile(comm.Durations, 95)))
	}
	_, _ = fmt.Fprintf(file, "\n")

	return nil
}

// statusLabel formats a summary status, including the empty one
func statusLabel(status enums.WorkflowExecutionStatus) string {
	if status == enums.WORKFLOW_EXECUTION_STATUS_UNSPECIFIED {
		return "⚪ NONE"
	}
	return formatStatus(status)
}
