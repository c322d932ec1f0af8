package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
)

func closed(id string, status enums.WorkflowExecutionStatus, start time.Time, d time.Duration) Execution {
	end := start.Add(d)
	return Execution{WorkflowID: id, RunID: id + "-run", Status: status, StartTime: start, CloseTime: &end}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)

	executions := []Execution{
		closed("backfill-a", enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, start, time.Second),
		closed("backfill-b", enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, start, 2*time.Second),
		closed("backfill-c", enums.WORKFLOW_EXECUTION_STATUS_FAILED, start, 3*time.Second),
		closed("backfill-c", enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, start.Add(time.Minute), 4*time.Second),
		{WorkflowID: "backfill-d", Status: enums.WORKFLOW_EXECUTION_STATUS_RUNNING, StartTime: start},
	}

	r := summarize(executions, now, 10)
	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 3, r.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_COMPLETED])
	assert.Equal(t, 1, r.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_RUNNING])
	assert.Equal(t, 1, r.Retried)
	assert.Equal(t, 2*time.Second, r.P50)
	assert.Equal(t, 4*time.Second, r.P95)
	assert.Equal(t, 4*time.Second, r.Max)
	require.Len(t, r.Failed, 1)
	assert.Equal(t, "backfill-c", r.Failed[0].WorkflowID)

	assert.Contains(t, markdown(r), "| COMPLETED | 3 | 60.00% |")
}

func TestSummarize_LimitsFailed(t *testing.T) {
	now := time.Now()
	var executions []Execution
	for i := 0; i < 5; i++ {
		executions = append(executions, closed("backfill", enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT, now.Add(time.Duration(i)*time.Minute), time.Minute))
	}

	r := summarize(executions, now, 2)
	require.Len(t, r.Failed, 2)
	assert.True(t, r.Failed[0].StartTime.After(r.Failed[1].StartTime))
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, time.Duration(0), percentile(nil, 0.5))

	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, time.Duration(5), percentile(sorted, 0.5))
	assert.Equal(t, time.Duration(10), percentile(sorted, 0.95))
	assert.Equal(t, time.Duration(1), percentile(sorted, 0))
}

func TestVisibilityQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "WorkflowType = 'BackfillAccountWorkflow'", visibilityQuery(0, now))
	assert.Equal(t, "WorkflowType = 'BackfillAccountWorkflow' AND StartTime > '2026-01-02T02:04:05Z'", visibilityQuery(time.Hour, now))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{500 * time.Millisecond, "500ms"},
		{5 * time.Second, "5.00s"},
		{2*time.Minute + 30*time.Second, "2m 30s"},
		{time.Hour + 15*time.Minute, "1h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.duration))
		})
	}
}
