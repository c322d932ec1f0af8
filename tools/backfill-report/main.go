// Command backfill-report summarizes BackfillAccountWorkflow executions in a Temporal namespace.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

const workflowType = "BackfillAccountWorkflow"

type Config struct {
	TemporalHost string
	Namespace    string
	Since        time.Duration // only executions started within this window, 0 for all
	PageSize     int
	QueryTimeout time.Duration
	OutputFile   string // optional markdown report
	ShowFailed   int    // failed executions listed in the report
}

// Execution is the part of a workflow execution the report uses
type Execution struct {
	WorkflowID string
	RunID      string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
}

// Duration returns the run time of a closed execution, or the time since start
func (e Execution) Duration(now time.Time) time.Duration {
	if e.CloseTime != nil {
		return e.CloseTime.Sub(e.StartTime)
	}
	return now.Sub(e.StartTime)
}

// Report is the aggregate over every listed execution
type Report struct {
	Total     int
	ByStatus  map[enums.WorkflowExecutionStatus]int
	P50       time.Duration
	P95       time.Duration
	Max       time.Duration
	Failed    []Execution
	Retried   int // accounts with more than one run
	Generated time.Time
}

func main() {
	cfg := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Printf("Error creating Temporal client: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	executions, err := listExecutions(ctx, c, cfg, time.Now())
	if err != nil {
		fmt.Printf("Error listing executions: %v\n", err)
		os.Exit(1)
	}

	report := summarize(executions, time.Now(), cfg.ShowFailed)
	printReport(report)

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, []byte(markdown(report)), 0600); err != nil {
			fmt.Printf("Warning: failed to write report: %v\n", err)
			return
		}
		fmt.Printf("Report written to: %s\n", cfg.OutputFile)
	}
}

func parseFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.TemporalHost, "temporal-host", "localhost:7233", "Temporal frontend address")
	flag.StringVar(&cfg.Namespace, "namespace", "default", "Temporal namespace")
	flag.DurationVar(&cfg.Since, "since", 24*time.Hour, "Only include executions started within this window (0 for all)")
	flag.IntVar(&cfg.PageSize, "page-size", 500, "Page size for visibility queries")
	flag.DurationVar(&cfg.QueryTimeout, "query-timeout", 30*time.Second, "Timeout for each visibility query")
	flag.StringVar(&cfg.OutputFile, "output", "", "Write a markdown report to this file")
	flag.IntVar(&cfg.ShowFailed, "show-failed", 20, "Number of failed executions to list")
	flag.Parse()
	return cfg
}

func visibilityQuery(since time.Duration, now time.Time) string {
	query := fmt.Sprintf("WorkflowType = '%s'", workflowType)
	if since > 0 {
		query += fmt.Sprintf(" AND StartTime > '%s'", now.Add(-since).UTC().Format(time.RFC3339))
	}
	return query
}

func listExecutions(ctx context.Context, c client.Client, cfg *Config, now time.Time) ([]Execution, error) {
	var (
		out   []Execution
		token []byte
	)
	for {
		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     cfg.Namespace,
			Query:         visibilityQuery(cfg.Since, now),
			PageSize:      int32(cfg.PageSize),
			NextPageToken: token,
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}

		for _, info := range resp.Executions {
			out = append(out, fromInfo(info))
		}

		token = resp.NextPageToken
		if len(token) == 0 {
			return out, nil
		}
	}
}

func fromInfo(info *workflowpb.WorkflowExecutionInfo) Execution {
	e := Execution{
		WorkflowID: info.GetExecution().GetWorkflowId(),
		RunID:      info.GetExecution().GetRunId(),
		Status:     info.GetStatus(),
		StartTime:  info.GetStartTime().AsTime(),
	}
	if info.CloseTime != nil {
		t := info.GetCloseTime().AsTime()
		e.CloseTime = &t
	}
	return e
}

func summarize(executions []Execution, now time.Time, showFailed int) *Report {
	r := &Report{
		Total:     len(executions),
		ByStatus:  make(map[enums.WorkflowExecutionStatus]int),
		Generated: now,
	}

	runs := make(map[string]int)
	var durations []time.Duration
	for _, e := range executions {
		r.ByStatus[e.Status]++
		runs[e.WorkflowID]++
		if e.CloseTime != nil {
			durations = append(durations, e.Duration(now))
		}
		if e.Status == enums.WORKFLOW_EXECUTION_STATUS_FAILED || e.Status == enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT {
			r.Failed = append(r.Failed, e)
		}
	}
	for _, n := range runs {
		if n > 1 {
			r.Retried++
		}
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	r.P50 = percentile(durations, 0.50)
	r.P95 = percentile(durations, 0.95)
	if len(durations) > 0 {
		r.Max = durations[len(durations)-1]
	}

	sort.Slice(r.Failed, func(i, j int) bool { return r.Failed[i].StartTime.After(r.Failed[j].StartTime) })
	if len(r.Failed) > showFailed {
		r.Failed = r.Failed[:showFailed]
	}
	return r
}

// percentile uses nearest rank over sorted durations
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(p*float64(len(sorted))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

var statusOrder = []enums.WorkflowExecutionStatus{
	enums.WORKFLOW_EXECUTION_STATUS_RUNNING,
	enums.WORKFLOW_EXECUTION_STATUS_COMPLETED,
	enums.WORKFLOW_EXECUTION_STATUS_FAILED,
	enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT,
	enums.WORKFLOW_EXECUTION_STATUS_CANCELED,
	enums.WORKFLOW_EXECUTION_STATUS_TERMINATED,
}

func printReport(r *Report) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Backfill executions: %d (accounts retried: %d)\n", r.Total, r.Retried)
	fmt.Println(strings.Repeat("=", 60))
	for _, s := range statusOrder {
		fmt.Printf("  %-12s %6d  %s\n", formatStatus(s), r.ByStatus[s], percentageString(r.ByStatus[s], r.Total))
	}
	fmt.Printf("\nDuration  p50 %s  p95 %s  max %s\n", formatDuration(r.P50), formatDuration(r.P95), formatDuration(r.Max))
	for _, e := range r.Failed {
		fmt.Printf("  %s %s  %s\n", formatStatus(e.Status), e.WorkflowID, e.StartTime.Format(time.RFC3339))
	}
}

func markdown(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Backfill report\n\nGenerated %s\n\n", r.Generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "| Status | Count | Share |\n|---|---:|---:|\n")
	for _, s := range statusOrder {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", formatStatus(s), r.ByStatus[s], percentageString(r.ByStatus[s], r.Total))
	}
	fmt.Fprintf(&b, "\n**Total** %d, accounts retried %d\n\n", r.Total, r.Retried)
	fmt.Fprintf(&b, "| p50 | p95 | max |\n|---|---|---|\n| %s | %s | %s |\n",
		formatDuration(r.P50), formatDuration(r.P95), formatDuration(r.Max))
	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, "\n## Failed\n\n")
		for _, e := range r.Failed {
			fmt.Fprintf(&b, "- `%s` run `%s` (%s)\n", e.WorkflowID, e.RunID, formatStatus(e.Status))
		}
	}
	return b.String()
}

func formatStatus(status enums.WorkflowExecutionStatus) string {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "RUNNING"
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "COMPLETED"
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "FAILED"
	case enums.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "CANCELED"
	case enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "TERMINATED"
	case enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "TIMED_OUT"
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
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

func percentageString(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}
