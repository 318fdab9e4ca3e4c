// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/qubeflow/qubeflow/pkg/models"
)

// CreateTestNode creates a Node with default values that can be overridden.
// The default is a TRANSFORM node with one input port "in" and one output port "out".
func CreateTestNode(id string, overrides ...func(*models.Node)) models.Node {
	node := models.Node{
		ID:       id,
		Type:     models.NodeTypeTransform,
		Title:    "Test Node " + id,
		Position: models.Position{X: 100, Y: 200},
		Ports:    []models.Port{models.InPort("in"), models.OutPort("out")},
	}

	for _, override := range overrides {
		override(&node)
	}

	return node
}

// Trigger creates a webhook trigger node with a single "out" port.
func Trigger(id string, overrides ...func(*models.Node)) models.Node {
	return CreateTestNode(id, append([]func(*models.Node){
		WithType(models.NodeTypeTriggerWebhook),
		WithPorts(models.OutPort("out")),
	}, overrides...)...)
}

// Qube creates an encryption node with one "in" and one "out" port.
func Qube(id string, overrides ...func(*models.Node)) models.Node {
	return CreateTestNode(id, append([]func(*models.Node){
		WithType(models.NodeTypeQubeEncrypt),
	}, overrides...)...)
}

// Action creates an HTTP action node with a single "in" port.
func Action(id string, overrides ...func(*models.Node)) models.Node {
	return CreateTestNode(id, append([]func(*models.Node){
		WithType(models.NodeTypeActionHTTP),
		WithPorts(models.InPort("in")),
	}, overrides...)...)
}

// WithType sets the node type.
func WithType(nodeType models.NodeType) func(*models.Node) {
	return func(n *models.Node) {
		n.Type = nodeType
	}
}

// WithPorts replaces the node ports.
func WithPorts(ports ...models.Port) func(*models.Node) {
	return func(n *models.Node) {
		n.Ports = ports
	}
}

// WithTitle sets the node title.
func WithTitle(title string) func(*models.Node) {
	return func(n *models.Node) {
		n.Title = title
	}
}

// WithConfig sets the node configuration.
func WithConfig(entries ...models.ConfigEntry) func(*models.Node) {
	return func(n *models.Node) {
		n.Config = models.NewConfig(entries...)
	}
}

// WithMicroAI sets the node agent configuration.
func WithMicroAI(cfg *models.MicroAIConfig) func(*models.Node) {
	return func(n *models.Node) {
		n.MicroAIConfig = cfg
	}
}

// WithPosition sets the node position.
func WithPosition(x, y float64) func(*models.Node) {
	return func(n *models.Node) {
		n.Position = models.Position{X: x, Y: y}
	}
}

// Connect creates an edge from fromNode.fromPort to toNode.toPort.
func Connect(id, fromNode, fromPort, toNode, toPort string) models.Edge {
	return models.Edge{
		ID:   id,
		From: models.Endpoint{NodeID: fromNode, PortID: fromPort},
		To:   models.Endpoint{NodeID: toNode, PortID: toPort},
	}
}

// Link connects fromNode.out to toNode.in, the default port names of the builders.
func Link(id, fromNode, toNode string) models.Edge {
	return Connect(id, fromNode, "out", toNode, "in")
}

// CreateTestWorkflow creates a draft workflow holding the given graph.
func CreateTestWorkflow(nodes []models.Node, edges []models.Edge, overrides ...func(*models.Workflow)) *models.Workflow {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	workflow := &models.Workflow{
		ID:          "wf-test",
		OwnerID:     "test-user",
		Name:        "Test Workflow",
		Description: "A workflow for testing",
		Status:      models.WorkflowStatusDraft,
		Nodes:       nodes,
		Edges:       edges,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, override := range overrides {
		override(workflow)
	}

	return workflow
}

// WithQubeSecurity attaches an evolution policy that requires Qube security.
func WithQubeSecurity() func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.EvolutionPolicy = &models.EvolutionPolicy{
			Enabled:     true,
			MaxVariants: 3,
			KPIPrimary:  models.KPIConversion,
			Constraints: models.EvolutionConstraints{MustUseQubeSecurity: true},
		}
	}
}

// WithWorkflowID sets the workflow id.
func WithWorkflowID(id string) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.ID = id
	}
}

// WithStatus sets the workflow status.
func WithStatus(status models.WorkflowStatus) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Status = status
	}
}

// SecuredPipeline returns the canonical valid graph T -> Q -> A.
func SecuredPipeline() *models.Workflow {
	return CreateTestWorkflow(
		[]models.Node{Trigger("T"), Qube("Q"), Action("A")},
		[]models.Edge{Link("e1", "T", "Q"), Link("e2", "Q", "A")},
		WithQubeSecurity(),
	)
}
