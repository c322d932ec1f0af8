package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/mocks"
	"github.com/feral-file/darkpool-indexer/internal/workflows"
)

func TestExecutor_BackfillAccount(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name         string
		workerErr    error
		nonRetryable bool
	}{
		{name: "success"},
		{name: "transient error stays retryable", workerErr: domain.NewTransientError("find nullifier spend", errors.New("rpc down"))},
		{name: "data error is non-retryable", workerErr: domain.NewDataError("decode calldata", errors.New("bad calldata")), nonRetryable: true},
		{
			name:         "unknown account is non-retryable",
			workerErr:    fmt.Errorf("backfill: %w", domain.ErrMasterViewSeedNotFound),
			nonRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			worker := mocks.NewMockBackfillWorker(ctrl)
			if tt.workerErr != nil {
				worker.EXPECT().BackfillAccount(gomock.Any(), accountID).Return(nil, tt.workerErr)
			} else {
				worker.EXPECT().BackfillAccount(gomock.Any(), accountID).Return(&backfill.Result{Slots: 2, Messages: 3}, nil)
			}

			result, err := workflows.NewExecutor(worker).BackfillAccount(context.Background(), accountID)
			if tt.workerErr == nil {
				require.NoError(t, err)
				assert.Equal(t, 3, result.Messages)
				return
			}

			require.Error(t, err)
			var appErr *temporal.ApplicationError
			if tt.nonRetryable {
				require.True(t, errors.As(err, &appErr))
				assert.True(t, appErr.NonRetryable())
				assert.Equal(t, "DataError", appErr.Type())
			} else {
				assert.False(t, errors.As(err, &appErr))
				assert.ErrorIs(t, err, tt.workerErr)
			}
		})
	}
}
