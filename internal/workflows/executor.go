package workflows

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// errTypeData marks activity failures that no retry can fix
const errTypeData = "DataError"

// Executor defines the activities run by the workflows
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// BackfillAccount enqueues every on-chain fact of an account
	BackfillAccount(ctx context.Context, accountID uuid.UUID) (*backfill.Result, error)
}

type executor struct {
	worker backfill.Worker
}

// NewExecutor creates the activity executor
func NewExecutor(w backfill.Worker) Executor {
	return &executor{worker: w}
}

func (e *executor) BackfillAccount(ctx context.Context, accountID uuid.UUID) (*backfill.Result, error) {
	result, err := e.worker.BackfillAccount(ctx, accountID)
	if err != nil {
		if domain.IsData(err) || errors.Is(err, domain.ErrMasterViewSeedNotFound) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), errTypeData, err)
		}
		return nil, err
	}
	return result, nil
}
