package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"

	"github.com/feral-file/darkpool-indexer/internal/mocks"
	"github.com/feral-file/darkpool-indexer/internal/workflows"
)

func TestDispatcher_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	workerCore := workflows.NewWorkerCore(mocks.NewMockExecutor(ctrl), workflows.WorkerCoreConfig{})

	run := &temporalmocks.WorkflowRun{}
	run.On("GetID").Return(workflows.BackfillWorkflowID(accountID))
	run.On("GetRunID").Return("run-1")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), accountID).
		DoAndReturn(func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "backfill-"+accountID.String(), opts.ID)
			assert.Equal(t, "darkpool-indexer", opts.TaskQueue)
			assert.Equal(t, enums.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING, opts.WorkflowIDConflictPolicy)
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE, opts.WorkflowIDReusePolicy)
			return run, nil
		})

	d := workflows.NewDispatcher(orchestrator, workerCore, "darkpool-indexer")
	require.NoError(t, d.Dispatch(context.Background(), accountID))
}

func TestDispatcher_DispatchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("frontend unavailable"))

	d := workflows.NewDispatcher(orchestrator, workflows.NewWorkerCore(mocks.NewMockExecutor(ctrl), workflows.WorkerCoreConfig{}), "q")
	err := d.Dispatch(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "frontend unavailable")
}
