package entity

import "time"

// ResourceAction is the outcome of one provisioning step.
type ResourceAction string

const (
	ActionCreated  ResourceAction = "created"
	ActionUpdated  ResourceAction = "updated"
	ActionSkipped  ResourceAction = "skipped"
	ActionDeleted  ResourceAction = "deleted"
	ActionFailed   ResourceAction = "failed"
	ActionNotFound ResourceAction = "not found"
)

// ResourceResult registra o que aconteceu com um recurso do stack.
type ResourceResult struct {
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	Arn      string         `json:"arn,omitempty"`
	Action   ResourceAction `json:"action"`
	Detail   string         `json:"detail,omitempty"`
	Duration time.Duration  `json:"duration_ns"`
}

// DeploymentReport aggregates one deploy/destroy/status run: every resource
// outcome plus the preflight findings, ready for display and export.
type DeploymentReport struct {
	StackName   string           `json:"stack_name"`
	Operation   string           `json:"operation"`
	Environment string           `json:"environment"`
	Region      string           `json:"region"`
	AccountID   string           `json:"account_id,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Resources   []ResourceResult `json:"resources"`
	Findings    Findings         `json:"findings,omitempty"`
	Success     bool             `json:"success"`
	Error       string           `json:"error,omitempty"`
}

// Add appends a resource outcome to the report.
func (r *DeploymentReport) Add(result ResourceResult) {
	r.Resources = append(r.Resources, result)
}

// Failed marks the report as failed with the given error.
func (r *DeploymentReport) Failed(err error) {
	r.Success = false
	if err != nil {
		r.Error = err.Error()
	}
}

// AllSkipped reports whether every step was a skip (nothing existed on a
// destroy, or nothing changed on a deploy).
func (r *DeploymentReport) AllSkipped() bool {
	for _, res := range r.Resources {
		if res.Action != ActionSkipped && res.Action != ActionNotFound {
			return false
		}
	}
	return len(r.Resources) > 0
}
