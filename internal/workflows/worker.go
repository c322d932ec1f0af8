// Package workflows runs account backfills as Temporal workflows.
package workflows

import (
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

// WorkerCore defines the workflows of the indexer
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockWorkerCore
type WorkerCore interface {
	// BackfillAccountWorkflow reconstructs one account
	BackfillAccountWorkflow(ctx workflow.Context, accountID uuid.UUID) (*backfill.Result, error)
}

// WorkerCoreConfig holds the workflow configuration
type WorkerCoreConfig struct {
	// BackfillTimeout bounds one backfill attempt
	BackfillTimeout time.Duration
	// BackfillMaxAttempts bounds retries of a failed backfill
	BackfillMaxAttempts int32
}

type workerCore struct {
	executor Executor
	config   WorkerCoreConfig
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.BackfillTimeout == 0 {
		config.BackfillTimeout = 30 * time.Minute
	}
	if config.BackfillMaxAttempts == 0 {
		config.BackfillMaxAttempts = 5
	}

	return &workerCore{
		executor: executor,
		config:   config,
	}
}

func (w *workerCore) BackfillAccountWorkflow(ctx workflow.Context, accountID uuid.UUID) (*backfill.Result, error) {
	logger.InfoWf(ctx, "Starting account backfill", zap.String("account_id", accountID.String()))

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.BackfillTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        5 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        5 * time.Minute,
			MaximumAttempts:        w.config.BackfillMaxAttempts,
			NonRetryableErrorTypes: []string{errTypeData},
		},
	})

	var result backfill.Result
	if err := workflow.ExecuteActivity(ctx, w.executor.BackfillAccount, accountID).Get(ctx, &result); err != nil {
		logger.ErrorWf(ctx, err, zap.String("account_id", accountID.String()))
		return nil, err
	}

	logger.InfoWf(ctx, "Account backfill enqueued",
		zap.String("account_id", accountID.String()),
		zap.Uint64("slots", result.Slots),
		zap.Int("messages", result.Messages))

	return &result, nil
}
