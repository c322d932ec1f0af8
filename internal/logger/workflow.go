package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// workflowFields tags a log line with the Temporal execution it came from
func workflowFields(ctx workflow.Context) []zap.Field {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowType := info.WorkflowType.Name
	if workflowType == "" {
		workflowType = "unknown"
	}
	return []zap.Field{
		zap.String("workflow_type", workflowType),
		zap.String("workflow_id", info.WorkflowExecution.ID),
		zap.String("run_id", info.WorkflowExecution.RunID),
		zap.String("task_queue", info.TaskQueueName),
		zap.Int32("attempt", info.Attempt),
	}
}

// InfoWf is Info for workflow code
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	log.With(workflowFields(ctx)...).Info(msg, fields...)
}

// ErrorWf is Error for workflow code
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	log.With(workflowFields(ctx)...).Error(errorMessage(err), errorFields(err, fields)...)
}
