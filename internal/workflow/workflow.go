// Package workflow composes primitive tool invocations into named,
// statically ordered multi-step operations.
//
// A workflow is declared as data: an ordered list of (step name, tool name,
// argument builder) triples fixed at registration time. The orchestrator runs
// the steps strictly in declaration order and records every step's outcome.
// A failed or disabled step never aborts the remaining ones, so one run
// reports the full diagnostic picture of a multi-backend operation.
package workflow

import (
	"time"

	"github.com/standup-sydney/mcp-gateway/internal/tools"
)

// Overall status of a workflow run.
const (
	OverallOK             = "ok"
	OverallPartialFailure = "partial_failure"
)

// Step is one stage of a workflow. BuildArgs derives the tool arguments from
// the subject identifiers threaded through the run; steps do not consume
// earlier steps' outputs.
type Step struct {
	Name      string
	Tool      string
	BuildArgs func(subjects map[string]string, stage string) map[string]any
}

// Definition is a named, fixed sequence of steps.
type Definition struct {
	Name  string
	Steps []Step
}

// StepRecord pairs a step name with its invocation result. Sequence position
// follows the definition, not completion time.
type StepRecord struct {
	Step   string                 `json:"step"`
	Result tools.InvocationResult `json:"result"`
}

// Report is the aggregate outcome of one workflow run. Steps always has one
// record per declared step, regardless of how many failed.
type Report struct {
	Workflow      string            `json:"workflow"`
	SubjectIDs    map[string]string `json:"subject_ids"`
	Stage         string            `json:"stage"`
	Steps         []StepRecord      `json:"steps"`
	OverallStatus string            `json:"overall_status"`
	Timestamp     time.Time         `json:"timestamp"`
}
