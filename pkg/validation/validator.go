package validation

import "github.com/qubeflow/qubeflow/pkg/models"

type options struct {
	policyMode PolicyMode
}

// Option customizes a validation run.
type Option func(*options)

// WithPolicyMode selects the quantum-security evaluation. The default is
// PolicyFirstDiscovery.
func WithPolicyMode(mode PolicyMode) Option {
	return func(o *options) {
		o.policyMode = mode
	}
}

// ValidateWorkflow runs the cycle, connectivity and security checks in that order and
// aggregates every finding. w must not be nil.
func ValidateWorkflow(w *models.Workflow, opts ...Option) Result {
	cfg := options{policyMode: PolicyFirstDiscovery}
	for _, opt := range opts {
		opt(&cfg)
	}

	adj := BuildAdjacency(w.Nodes, w.Edges)
	issues := make([]Issue, 0)

	if hasCycle(w.Nodes, adj) {
		issues = append(issues, Issue{
			Code:    CodeCycleDetected,
			Message: "workflow graph contains a cycle",
		})
	}

	issues = append(issues, checkConnectivity(w.Nodes, w.Edges, adj)...)
	issues = append(issues, checkSecurityPolicy(w, adj, cfg.policyMode)...)

	return Result{
		Valid:  len(issues) == 0,
		Issues: issues,
	}
}
