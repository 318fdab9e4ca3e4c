// Package validation checks workflow graphs for structural and security-policy problems.
//
// Every check is a pure function of its input. Problems are returned as Issues, never as
// errors, and all checks always run so a single call reports everything at once.
package validation

import "fmt"

// IssueCode is the machine-readable kind of a finding.
type IssueCode string

const (
	CodeCycleDetected        IssueCode = "cycle-detected"
	CodeMissingNode          IssueCode = "missing-node"
	CodeMissingPort          IssueCode = "missing-port"
	CodeInvalidPortDirection IssueCode = "invalid-port-direction"
	CodeUnconnectedInput     IssueCode = "unconnected-input"
	CodeMissingQuantum       IssueCode = "missing-quantum"
	CodeQuantumPolicy        IssueCode = "quantum-policy"
)

// Issue is a single validation finding.
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
	NodeID  string    `json:"nodeId,omitempty"`
	EdgeID  string    `json:"edgeId,omitempty"`
}

func (i Issue) String() string {
	s := fmt.Sprintf("[%s] %s", i.Code, i.Message)
	if i.NodeID != "" {
		s += fmt.Sprintf(" (node: %s)", i.NodeID)
	}

	if i.EdgeID != "" {
		s += fmt.Sprintf(" (edge: %s)", i.EdgeID)
	}

	return s
}

// Result aggregates every finding of a validation run.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Codes returns the issue codes in order.
func (r Result) Codes() []IssueCode {
	codes := make([]IssueCode, 0, len(r.Issues))
	for _, i := range r.Issues {
		codes = append(codes, i.Code)
	}

	return codes
}
