// Package metrics exposes Prometheus collectors for tool invocations and
// workflow runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ToolInvocations counts tool invocations by tool name and result status.
	ToolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_tool_invocations_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"},
	)

	// ToolInvocationDuration tracks invocation latency per tool.
	ToolInvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_tool_invocation_duration_seconds",
			Help:    "Tool invocation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	// WorkflowRuns counts workflow executions by workflow name and overall status.
	WorkflowRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_workflow_runs_total",
			Help: "Total number of workflow runs",
		},
		[]string{"workflow", "overall_status"},
	)
)

// Register registers all collectors with the default Prometheus registry.
// Called once from the composition root; tests use the collectors unregistered.
func Register() {
	prometheus.MustRegister(ToolInvocations, ToolInvocationDuration, WorkflowRuns)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveInvocation records one tool invocation outcome.
func ObserveInvocation(tool, status string, duration time.Duration) {
	ToolInvocations.WithLabelValues(tool, status).Inc()
	ToolInvocationDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// ObserveWorkflow records one workflow run outcome.
func ObserveWorkflow(workflow, overallStatus string) {
	WorkflowRuns.WithLabelValues(workflow, overallStatus).Inc()
}
