package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/providers/temporal"
)

// Dispatcher starts backfill workflows. One workflow runs per account at a time.
type Dispatcher struct {
	orchestrator temporal.TemporalOrchestrator
	workerCore   WorkerCore
	taskQueue    string
}

var _ backfill.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher that starts workflows on taskQueue
func NewDispatcher(orchestrator temporal.TemporalOrchestrator, workerCore WorkerCore, taskQueue string) *Dispatcher {
	return &Dispatcher{
		orchestrator: orchestrator,
		workerCore:   workerCore,
		taskQueue:    taskQueue,
	}
}

// BackfillWorkflowID returns the workflow ID of an account's backfill
func BackfillWorkflowID(accountID uuid.UUID) string {
	return fmt.Sprintf("backfill-%s", accountID)
}

// Dispatch starts the account's backfill workflow, attaching to it if one is already running
func (d *Dispatcher) Dispatch(ctx context.Context, accountID uuid.UUID) error {
	opts := client.StartWorkflowOptions{
		ID:                       BackfillWorkflowID(accountID),
		TaskQueue:                d.taskQueue,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowIDConflictPolicy: enums.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
	}

	run, err := d.orchestrator.ExecuteWorkflow(ctx, opts, d.workerCore.BackfillAccountWorkflow, accountID)
	if err != nil {
		return fmt.Errorf("failed to start backfill workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Backfill workflow started",
		logger.AccountID(accountID),
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()))
	return nil
}
