package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/feral-file/ff-yield-ledger/internal/domain"
	"github.com/feral-file/ff-yield-ledger/internal/mocks"
)

func testConfig() *Config {
	return &Config{
		Currency:    "ton",
		Amount:      "2.5",
		UserFrom:    10,
		UserTo:      12,
		Count:       5,
		Concurrency: 2,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown currency", mutate: func(c *Config) { c.Currency = "BTC" }, wantErr: true},
		{name: "bad amount", mutate: func(c *Config) { c.Amount = "abc" }, wantErr: true},
		{name: "zero amount", mutate: func(c *Config) { c.Amount = "0" }, wantErr: true},
		{name: "inverted user range", mutate: func(c *Config) { c.UserTo = 1 }, wantErr: true},
		{name: "zero user", mutate: func(c *Config) { c.UserFrom = 0 }, wantErr: true},
		{name: "zero count", mutate: func(c *Config) { c.Count = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("clamps concurrency", func(t *testing.T) {
		cfg := testConfig()
		cfg.Concurrency = 500
		if err := validateConfig(cfg); err != nil {
			t.Fatalf("validateConfig() error = %v", err)
		}
		if cfg.Concurrency != 100 {
			t.Errorf("Concurrency = %d, want 100", cfg.Concurrency)
		}
	})
}

func TestBuildDepositEvent(t *testing.T) {
	cfg := testConfig()

	wantUsers := []uint64{10, 11, 12, 10, 11}
	seen := make(map[string]bool)
	for i, want := range wantUsers {
		event := buildDepositEvent("run-1", i, cfg)
		if event.UserID != want {
			t.Errorf("event %d UserID = %d, want %d", i, event.UserID, want)
		}
		if event.Currency != domain.CurrencyTON {
			t.Errorf("event %d Currency = %s, want TON", i, event.Currency)
		}
		if event.Amount.String() != "2.5" {
			t.Errorf("event %d Amount = %s, want 2.5", i, event.Amount)
		}
		if flagged, reason := domain.CheckKeyStrength(event.IdempotencyKey); flagged {
			t.Errorf("event %d key flagged: %s", i, reason)
		}
		if seen[event.IdempotencyKey] {
			t.Errorf("event %d key %s is not unique", i, event.IdempotencyKey)
		}
		seen[event.IdempotencyKey] = true
	}

	first := buildDepositEvent("run-1", 0, cfg)
	if first.IdempotencyKey != buildDepositEvent("run-1", 0, cfg).IdempotencyKey {
		t.Errorf("keys are not deterministic")
	}
	if other := buildDepositEvent("run-2", 0, cfg); other.IdempotencyKey == first.IdempotencyKey {
		t.Errorf("keys collide across runs")
	}
}

func TestPublishDeposits(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)

	cfg := testConfig()
	publisher.EXPECT().
		PublishDepositConfirmed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.DepositConfirmedEvent) error {
			if event.UserID == 11 {
				return errors.New("nats: timeout")
			}
			return nil
		}).
		Times(cfg.Count)

	stats := publishDeposits(context.Background(), publisher, cfg)

	if stats.Published != 3 {
		t.Errorf("Published = %d, want 3", stats.Published)
	}
	if stats.Failed != 2 {
		t.Errorf("Failed = %d, want 2", stats.Failed)
	}
	if stats.Errors["nats: timeout"] != 2 {
		t.Errorf("Errors = %v, want 2 timeouts", stats.Errors)
	}
	if len(stats.Latencies) != 3 {
		t.Errorf("Latencies = %d, want 3", len(stats.Latencies))
	}
	if stats.RunID == "" {
		t.Errorf("RunID is empty")
	}
}

func TestSummarizeExecutions(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	exec := func(status enums.WorkflowExecutionStatus, startOffset, runFor time.Duration) *workflowpb.WorkflowExecutionInfo {
		info := &workflowpb.WorkflowExecutionInfo{
			Status:    status,
			StartTime: timestamppb.New(base.Add(startOffset)),
		}
		if status != enums.WORKFLOW_EXECUTION_STATUS_RUNNING {
			info.CloseTime = timestamppb.New(base.Add(startOffset + runFor))
		}
		return info
	}

	t.Run("all closed", func(t *testing.T) {
		stats := summarizeExecutions([]*workflowpb.WorkflowExecutionInfo{
			exec(enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, 0, time.Second),
			exec(enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, time.Second, 3*time.Second),
			exec(enums.WORKFLOW_EXECUTION_STATUS_FAILED, 2*time.Second, time.Second),
		}, base.Add(time.Hour))

		if stats.Total != 3 || stats.Completed != 2 || stats.Failed != 1 || stats.Running != 0 {
			t.Errorf("unexpected counts: %+v", stats)
		}
		if !stats.FirstStart.Equal(base) {
			t.Errorf("FirstStart = %v, want %v", stats.FirstStart, base)
		}
		if stats.LastEnd == nil || !stats.LastEnd.Equal(base.Add(4*time.Second)) {
			t.Errorf("LastEnd = %v, want %v", stats.LastEnd, base.Add(4*time.Second))
		}
		if stats.TotalDuration != 4*time.Second {
			t.Errorf("TotalDuration = %v, want 4s", stats.TotalDuration)
		}
		if len(stats.Durations) != 3 {
			t.Errorf("Durations = %d, want 3", len(stats.Durations))
		}
		if stats.overallStatus() != enums.WORKFLOW_EXECUTION_STATUS_FAILED {
			t.Errorf("overallStatus() = %v, want FAILED", stats.overallStatus())
		}
	})

	t.Run("still running measures to now", func(t *testing.T) {
		now := base.Add(10 * time.Second)
		stats := summarizeExecutions([]*workflowpb.WorkflowExecutionInfo{
			exec(enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, 0, time.Second),
			exec(enums.WORKFLOW_EXECUTION_STATUS_RUNNING, time.Second, 0),
		}, now)

		if stats.Running != 1 {
			t.Errorf("Running = %d, want 1", stats.Running)
		}
		if stats.TotalDuration != 10*time.Second {
			t.Errorf("TotalDuration = %v, want 10s", stats.TotalDuration)
		}
		if stats.overallStatus() != enums.WORKFLOW_EXECUTION_STATUS_RUNNING {
			t.Errorf("overallStatus() = %v, want RUNNING", stats.overallStatus())
		}
	})

	t.Run("empty", func(t *testing.T) {
		stats := summarizeExecutions(nil, base)
		if stats.Total != 0 || stats.TotalDuration != 0 {
			t.Errorf("unexpected stats: %+v", stats)
		}
		if stats.overallStatus() != enums.WORKFLOW_EXECUTION_STATUS_UNSPECIFIED {
			t.Errorf("overallStatus() = %v, want UNSPECIFIED", stats.overallStatus())
		}
	})
}

func TestPercentile(t *testing.T) {
	durations := []time.Duration{5 * time.Millisecond, time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}

	tests := []struct {
		name string
		p    float64
		want time.Duration
	}{
		{name: "p50", p: 50, want: 3 * time.Millisecond},
		{name: "p95", p: 95, want: 5 * time.Millisecond},
		{name: "p0", p: 0, want: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(durations, tt.p); got != tt.want {
				t.Errorf("percentile() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(nil) = %v, want 0", got)
	}
	if durations[0] != 5*time.Millisecond {
		t.Errorf("percentile sorted its input")
	}
}

func TestWriteMarkdownReport(t *testing.T) {
	cfg := testConfig()
	pub := &PublishStats{
		RunID:     "01HRUN",
		Currency:  domain.CurrencyTON,
		Total:     cfg.Count,
		Published: 4,
		Failed:    1,
		Duration:  2 * time.Second,
		Latencies: []time.Duration{time.Millisecond},
	}
	end := time.Date(2026, 1, 1, 12, 0, 5, 0, time.UTC)
	comm := &CommissionStats{
		Total:         4,
		Completed:     3,
		TimedOut:      1,
		FirstStart:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		LastEnd:       &end,
		TotalDuration: 5 * time.Second,
	}

	path := filepath.Join(t.TempDir(), "report.md")
	if err := writeMarkdownReport(path, pub, comm); err != nil {
		t.Fatalf("writeMarkdownReport() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	report := string(data)

	for _, want := range []string{
		"# Deposit Benchmark Report",
		"| **Published** | 4 (80.0%) |",
		"| **Failed** | 1 (20.0%) |",
		"## PropagateCommissions Workflows",
		"| **Rate** | 2.00 deposits/s |",
		"| **Timed Out** | 1 (25.0%) |",
		"⏱️ TIMED_OUT",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}

	path = filepath.Join(t.TempDir(), "publish-only.md")
	if err := writeMarkdownReport(path, pub, nil); err != nil {
		t.Fatalf("writeMarkdownReport() error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "Commission workflows were not collected") {
		t.Errorf("publish-only report missing note")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "milliseconds",
			duration: 500 * time.Millisecond,
			want:     "500ms",
		},
		{
			name:     "seconds",
			duration: 5 * time.Second,
			want:     "5.00s",
		},
		{
			name:     "minutes",
			duration: 2*time.Minute + 30*time.Second,
			want:     "2m 30s",
		},
		{
			name:     "hours",
			duration: 1*time.Hour + 15*time.Minute,
			want:     "1h 15m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name   string
		status enums.WorkflowExecutionStatus
		want   string
	}{
		{
			name:   "running",
			status: enums.WORKFLOW_EXECUTION_STATUS_RUNNING,
			want:   "🟡 RUNNING",
		},
		{
			name:   "completed",
			status: enums.WORKFLOW_EXECUTION_STATUS_COMPLETED,
			want:   "✅ COMPLETED",
		},
		{
			name:   "failed",
			status: enums.WORKFLOW_EXECUTION_STATUS_FAILED,
			want:   "❌ FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatStatus(tt.status)
			if got != tt.want {
				t.Errorf("formatStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsWorkflowComplete(t *testing.T) {
	tests := []struct {
		name   string
		status enums.WorkflowExecutionStatus
		want   bool
	}{
		{
			name:   "running is not complete",
			status: enums.WORKFLOW_EXECUTION_STATUS_RUNNING,
			want:   false,
		},
		{
			name:   "completed is complete",
			status: enums.WORKFLOW_EXECUTION_STATUS_COMPLETED,
			want:   true,
		},
		{
			name:   "failed is complete",
			status: enums.WORKFLOW_EXECUTION_STATUS_FAILED,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isWorkflowComplete(tt.status)
			if got != tt.want {
				t.Errorf("isWorkflowComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{name: "half", part: 1, total: 2, want: "50.0%"},
		{name: "all", part: 5, total: 5, want: "100.0%"},
		{name: "none", part: 0, total: 5, want: "0.0%"},
		{name: "third", part: 1, total: 3, want: "33.3%"},
		{name: "empty run", part: 5, total: 0, want: "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := share(tt.part, tt.total); got != tt.want {
				t.Errorf("share() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		duration time.Duration
		unit     string
		want     string
	}{
		{name: "deposits", count: 10, duration: 10 * time.Second, unit: "deposits", want: "1.00 deposits/s"},
		{name: "workflows", count: 25, duration: 10 * time.Second, unit: "workflows", want: "2.50 workflows/s"},
		{name: "zero duration", count: 10, duration: 0, unit: "deposits", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := perSecond(tt.count, tt.duration, tt.unit); got != tt.want {
				t.Errorf("perSecond() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommissionStats_OverallStatus(t *testing.T) {
	tests := []struct {
		name  string
		stats CommissionStats
		want  string
	}{
		{name: "running wins", stats: CommissionStats{Running: 1, Failed: 1, Completed: 3}, want: "🟡 RUNNING"},
		{name: "failed", stats: CommissionStats{Failed: 1, Completed: 3}, want: "❌ FAILED"},
		{name: "timed out", stats: CommissionStats{TimedOut: 1, Completed: 3}, want: "⏱️ TIMED_OUT"},
		{name: "completed", stats: CommissionStats{Completed: 3}, want: "✅ COMPLETED"},
		{name: "nothing collected", stats: CommissionStats{}, want: "⚪ NONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusLabel(tt.stats.overallStatus()); got != tt.want {
				t.Errorf("statusLabel() = %v, want %v", got, tt.want)
			}
		})
	}
}
