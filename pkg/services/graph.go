package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"github.com/qubeflow/qubeflow/pkg/registry"
)

// AddNodeRequest describes a node to add. Empty ID, Title and Ports are filled from the
// node type's registry entry.
type AddNodeRequest struct {
	ID            string
	Type          models.NodeType
	Title         string
	Position      models.Position
	Ports         []models.Port
	Config        models.Config
	MicroAIConfig *models.MicroAIConfig
	Badges        []string
}

// UpdateNodeRequest changes the fields that are set. The node type cannot change.
type UpdateNodeRequest struct {
	Title         *string
	Position      *models.Position
	Ports         []models.Port
	Config        *models.Config
	MicroAIConfig *models.MicroAIConfig
	Badges        []string
}

type AddEdgeRequest struct {
	ID    string
	From  models.Endpoint
	To    models.Endpoint
	Label string
}

// Graph edits the nodes and edges of draft and paused workflows. Edges are stored as
// given; dangling references are reported by validation, not rejected here.
type Graph struct {
	persistence persistence.Persistence
	registry    *registry.Registry
}

func NewGraph(persistence persistence.Persistence, registry *registry.Registry) *Graph {
	return &Graph{
		persistence: persistence,
		registry:    registry,
	}
}

func (g *Graph) loadEditable(ctx context.Context, workflowID string) (*models.Workflow, error) {
	workflow, err := g.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if !workflow.IsEditable() {
		return nil, ErrCannotModifyActive
	}

	return workflow, nil
}

func (g *Graph) save(ctx context.Context, workflow *models.Workflow) error {
	err := g.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	return nil
}

func (g *Graph) validateConfig(nodeType models.NodeType, config models.Config) error {
	err := g.registry.ValidateConfig(nodeType, config)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrUnknownNodeType):
		return fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
	case errors.Is(err, registry.ErrInvalidConfig):
		return fmt.Errorf("%w: %w", ErrInvalidNodeConfig, err)
	default:
		return err
	}
}

// AddNode appends a node to the workflow.
func (g *Graph) AddNode(ctx context.Context, workflowID string, req AddNodeRequest) (*models.Node, error) {
	if req.Type == "" {
		return nil, fmt.Errorf("%w: node type is required", ErrInvalidRequest)
	}

	err := g.validateConfig(req.Type, req.Config)
	if err != nil {
		return nil, err
	}

	workflow, err := g.loadEditable(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node := models.Node{
		ID:            req.ID,
		Type:          req.Type,
		Title:         req.Title,
		Position:      req.Position,
		Ports:         req.Ports,
		Config:        req.Config,
		MicroAIConfig: req.MicroAIConfig,
		Badges:        req.Badges,
	}

	if node.ID == "" {
		node.ID = uuid.New().String()
	}

	if _, exists := workflow.NodeByID(node.ID); exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, node.ID)
	}

	if spec, ok := g.registry.Get(node.Type); ok {
		if node.Title == "" {
			node.Title = spec.Title
		}

		if len(node.Ports) == 0 {
			node.Ports = g.registry.DefaultPorts(node.Type)
		}
	}

	workflow.Nodes = append(workflow.Nodes, node)

	err = g.save(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return &node, nil
}

// UpdateNode applies a partial update to a node.
func (g *Graph) UpdateNode(ctx context.Context, workflowID, nodeID string, req UpdateNodeRequest) (*models.Node, error) {
	workflow, err := g.loadEditable(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node, ok := workflow.NodeByID(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	if req.Config != nil {
		err := g.validateConfig(node.Type, *req.Config)
		if err != nil {
			return nil, err
		}

		node.Config = *req.Config
	}

	if req.Title != nil {
		node.Title = *req.Title
	}

	if req.Position != nil {
		node.Position = *req.Position
	}

	if req.Ports != nil {
		node.Ports = req.Ports
	}

	if req.MicroAIConfig != nil {
		node.MicroAIConfig = req.MicroAIConfig
	}

	if req.Badges != nil {
		node.Badges = req.Badges
	}

	updated := *node

	err = g.save(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// RemoveNode deletes a node and every edge touching it. It returns the number of edges
// removed alongside.
func (g *Graph) RemoveNode(ctx context.Context, workflowID, nodeID string) (int, error) {
	workflow, err := g.loadEditable(ctx, workflowID)
	if err != nil {
		return 0, err
	}

	if _, ok := workflow.NodeByID(nodeID); !ok {
		return 0, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	workflow.Nodes = slices.DeleteFunc(workflow.Nodes, func(n models.Node) bool {
		return n.ID == nodeID
	})

	before := len(workflow.Edges)
	workflow.Edges = slices.DeleteFunc(workflow.Edges, func(e models.Edge) bool {
		return e.From.NodeID == nodeID || e.To.NodeID == nodeID
	})

	err = g.save(ctx, workflow)
	if err != nil {
		return 0, err
	}

	return before - len(workflow.Edges), nil
}

// AddEdge appends an edge to the workflow.
func (g *Graph) AddEdge(ctx context.Context, workflowID string, req AddEdgeRequest) (*models.Edge, error) {
	workflow, err := g.loadEditable(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	edge := models.Edge{
		ID:    req.ID,
		From:  req.From,
		To:    req.To,
		Label: req.Label,
	}

	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}

	if slices.ContainsFunc(workflow.Edges, func(e models.Edge) bool { return e.ID == edge.ID }) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEdgeID, edge.ID)
	}

	workflow.Edges = append(workflow.Edges, edge)

	err = g.save(ctx, workflow)
	if err != nil {
		return nil, err
	}

	return &edge, nil
}

func (g *Graph) RemoveEdge(ctx context.Context, workflowID, edgeID string) error {
	workflow, err := g.loadEditable(ctx, workflowID)
	if err != nil {
		return err
	}

	before := len(workflow.Edges)
	workflow.Edges = slices.DeleteFunc(workflow.Edges, func(e models.Edge) bool {
		return e.ID == edgeID
	})

	if len(workflow.Edges) == before {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, edgeID)
	}

	return g.save(ctx, workflow)
}
