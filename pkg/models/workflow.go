// Package models defines the core domain models for node-based workflow automation
package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusDraft  WorkflowStatus = "draft"  // Editable, not running
	WorkflowStatusActive WorkflowStatus = "active" // Running its live version
	WorkflowStatusPaused WorkflowStatus = "paused" // Editable, temporarily stopped
)

// Workflow represents a graph of nodes connected by edges, plus its version history.
type Workflow struct {
	ID               string            `json:"id"                          yaml:"id"`
	OwnerID          string            `json:"ownerId"                     yaml:"ownerId"`
	Name             string            `json:"name"                        yaml:"name"                        validate:"required,min=3"`
	Description      string            `json:"description"                 yaml:"description"`
	Status           WorkflowStatus    `json:"status"                      yaml:"status"                      validate:"omitempty,oneof=draft active paused"`
	Nodes            []Node            `json:"nodes"                       yaml:"nodes"                       validate:"dive"`
	Edges            []Edge            `json:"edges"                       yaml:"edges"                       validate:"dive"`
	CurrentVersionID string            `json:"currentVersionId,omitempty"  yaml:"currentVersionId,omitempty"`
	Versions         []WorkflowVersion `json:"versions,omitempty"          yaml:"versions,omitempty"`
	EvolutionPolicy  *EvolutionPolicy  `json:"evolutionPolicy,omitempty"   yaml:"evolutionPolicy,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"                   yaml:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"                   yaml:"updatedAt"`
}

// NodeByID returns the first node with the given id.
func (w *Workflow) NodeByID(id string) (*Node, bool) {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i], true
		}
	}

	return nil, false
}

// VersionByID returns the version with the given id.
func (w *Workflow) VersionByID(id string) (*WorkflowVersion, bool) {
	for i := range w.Versions {
		if w.Versions[i].ID == id {
			return &w.Versions[i], true
		}
	}

	return nil, false
}

// RequiresQubeSecurity reports whether the evolution policy mandates a quantum-secured
// node on every trigger-to-action path.
func (w *Workflow) RequiresQubeSecurity() bool {
	return w.EvolutionPolicy != nil && w.EvolutionPolicy.Constraints.MustUseQubeSecurity
}

// IsEditable reports whether the graph may be changed. Active workflows run their live
// version and must be paused first.
func (w *Workflow) IsEditable() bool {
	return w.Status != WorkflowStatusActive
}
