package web

import "github.com/qubeflow/qubeflow/pkg/models"

// CreateWorkflowRequest represents the request body for creating a new workflow. A graph
// may be supplied up front or built node by node afterwards.
type CreateWorkflowRequest struct {
	Name            string                  `json:"name"                      validate:"required,min=3"`
	Description     string                  `json:"description"`
	OwnerID         string                  `json:"ownerId"                   validate:"required"`
	Nodes           []models.Node           `json:"nodes,omitempty"           validate:"dive"`
	Edges           []models.Edge           `json:"edges,omitempty"           validate:"dive"`
	EvolutionPolicy *models.EvolutionPolicy `json:"evolutionPolicy,omitempty"`
}

// UpdateWorkflowRequest represents the request body for updating an existing workflow.
// All fields are optional to support partial updates.
type UpdateWorkflowRequest struct {
	Name            *string                 `json:"name,omitempty"            validate:"omitempty,min=3"`
	Description     *string                 `json:"description,omitempty"`
	Status          *models.WorkflowStatus  `json:"status,omitempty"          validate:"omitempty,oneof=draft paused"`
	Nodes           []models.Node           `json:"nodes,omitempty"           validate:"omitempty,dive"`
	Edges           []models.Edge           `json:"edges,omitempty"           validate:"omitempty,dive"`
	EvolutionPolicy *models.EvolutionPolicy `json:"evolutionPolicy,omitempty"`
}

// CreateNodeRequest represents the request body for adding a node. Title and ports
// default to the node type's registry entry.
type CreateNodeRequest struct {
	ID            string                `json:"id,omitempty"`
	Type          models.NodeType       `json:"type"                    validate:"required"`
	Title         string                `json:"title,omitempty"`
	Position      models.Position       `json:"position"`
	Ports         []models.Port         `json:"ports,omitempty"         validate:"dive"`
	Config        models.Config         `json:"config,omitempty"`
	MicroAIConfig *models.MicroAIConfig `json:"microAIConfig,omitempty"`
	Badges        []string              `json:"badges,omitempty"`
}

// UpdateNodeRequest represents the request body for updating a node. The type cannot
// change.
type UpdateNodeRequest struct {
	Title         *string               `json:"title,omitempty"`
	Position      *models.Position      `json:"position,omitempty"`
	Ports         []models.Port         `json:"ports,omitempty"         validate:"omitempty,dive"`
	Config        *models.Config        `json:"config,omitempty"`
	MicroAIConfig *models.MicroAIConfig `json:"microAIConfig,omitempty"`
	Badges        []string              `json:"badges,omitempty"`
}

// CreateEdgeRequest represents the request body for connecting two ports.
type CreateEdgeRequest struct {
	ID    string          `json:"id,omitempty"`
	From  models.Endpoint `json:"from"`
	To    models.Endpoint `json:"to"`
	Label string          `json:"label,omitempty"`
}

// CreateVersionRequest represents the optional request body for snapshotting a version.
type CreateVersionRequest struct {
	Label string `json:"label,omitempty" validate:"max=100"`
}

// RemoveNodeResponse reports how many edges were dropped with the node.
type RemoveNodeResponse struct {
	NodeID       string `json:"nodeId"`
	RemovedEdges int    `json:"removedEdges"`
}
