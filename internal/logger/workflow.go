package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies a workflow execution in log entries and Sentry events
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

// Fields returns the info as zap fields
func (w WorkflowInfo) Fields() []zap.Field {
	return []zap.Field{
		zap.String("workflow_type", w.WorkflowType),
		zap.String("workflow_id", w.WorkflowID),
		zap.String("run_id", w.RunID),
		zap.String("namespace", w.Namespace),
		zap.String("task_queue", w.TaskQueue),
	}
}

// GetWorkflowInfo extracts the execution info of a workflow context, or nil outside a workflow
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	if ctx == nil {
		return nil
	}
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	name := info.WorkflowType.Name
	if name == "" {
		name = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: name,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// WithWorkflowInfo returns a logger tagged with the workflow execution
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return log.With(info.Fields()...)
}

// FromWorkflow returns a logger tagged with the execution of ctx
func FromWorkflow(ctx workflow.Context) *zap.Logger {
	info := GetWorkflowInfo(ctx)
	if info == nil {
		return log
	}
	return WithWorkflowInfo(*info)
}

// Replayed workflow code must not log twice, so the helpers below are silent during replay.

func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if isReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Info(msg, fields...)
}

func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if isReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Warn(msg, fields...)
}

func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if isReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Error(errorMessage(err), fields...)
}

func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if isReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Debug(msg, fields...)
}

func isReplaying(ctx workflow.Context) bool {
	return ctx != nil && workflow.IsReplaying(ctx)
}
