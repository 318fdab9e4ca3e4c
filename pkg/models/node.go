// Package models defines core node-based workflow models for graph validation
package models

import "strings"

// NodeType is the tag identifying what a node does. Its prefix decides the category.
type NodeType string

// Built-in node types.
const (
	NodeTypeTriggerWebhook  NodeType = "TRIGGER_WEBHOOK"
	NodeTypeTriggerSchedule NodeType = "TRIGGER_SCHEDULE"
	NodeTypeTriggerEvent    NodeType = "TRIGGER_EVENT"

	NodeTypeActionHTTP    NodeType = "ACTION_HTTP"
	NodeTypeActionEmail   NodeType = "ACTION_EMAIL"
	NodeTypeActionDBWrite NodeType = "ACTION_DB_WRITE"
	NodeTypeActionNotify  NodeType = "ACTION_NOTIFY"

	NodeTypeQubeEncrypt     NodeType = "QUBE_ENCRYPT"
	NodeTypeQubeSign        NodeType = "QUBE_SIGN"
	NodeTypeQubeKeyExchange NodeType = "QUBE_KEY_EXCHANGE"

	NodeTypeAIAgent      NodeType = "AI_AGENT"
	NodeTypeAIClassifier NodeType = "AI_CLASSIFIER"
	NodeTypeLogicBranch  NodeType = "LOGIC_BRANCH"
	NodeTypeLogicMerge   NodeType = "LOGIC_MERGE"
	NodeTypeTransform    NodeType = "TRANSFORM"
)

// Category prefixes. Any node type, built-in or not, is classified by these.
const (
	TriggerPrefix = "TRIGGER_"
	ActionPrefix  = "ACTION_"
	QubePrefix    = "QUBE_"
)

// Category is the semantic role of a node as seen by the validators.
type Category string

const (
	CategoryTrigger Category = "trigger" // Graph source
	CategoryAction  Category = "action"  // Externally visible side effect
	CategoryQuantum Category = "quantum" // Security boundary
	CategoryOther   Category = "other"   // AI, logic and transform nodes
)

// Classify maps a node type to its category. It is the only place the prefix
// convention is interpreted.
func Classify(t NodeType) Category {
	s := string(t)

	switch {
	case strings.HasPrefix(s, TriggerPrefix):
		return CategoryTrigger
	case strings.HasPrefix(s, ActionPrefix):
		return CategoryAction
	case strings.HasPrefix(s, QubePrefix):
		return CategoryQuantum
	default:
		return CategoryOther
	}
}

// Position is the canvas location of a node. Presentation only.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// MicroAIConfig configures the embedded agent of a node.
type MicroAIConfig struct {
	Model        string   `json:"model,omitempty"        yaml:"model,omitempty"`
	SystemPrompt string   `json:"systemPrompt,omitempty" yaml:"systemPrompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"  yaml:"temperature,omitempty"  validate:"omitempty,min=0,max=2"`
	MaxTokens    *int     `json:"maxTokens,omitempty"    yaml:"maxTokens,omitempty"    validate:"omitempty,min=1"`
	Tools        []string `json:"tools,omitempty"        yaml:"tools,omitempty"`
}

// Node represents a node instance in a workflow.
type Node struct {
	ID            string         `json:"id"                      yaml:"id"                      validate:"required"`
	Type          NodeType       `json:"type"                    yaml:"type"                    validate:"required"`
	Title         string         `json:"title"                   yaml:"title"`
	Position      Position       `json:"position"                yaml:"position"`
	Ports         []Port         `json:"ports"                   yaml:"ports"                   validate:"dive"`
	Config        Config         `json:"config,omitempty"        yaml:"config,omitempty"`
	MicroAIConfig *MicroAIConfig `json:"microAIConfig,omitempty" yaml:"microAIConfig,omitempty"`
	Badges        []string       `json:"badges,omitempty"        yaml:"badges,omitempty"`
}

// Category returns the semantic category derived from the node type.
func (n *Node) Category() Category {
	return Classify(n.Type)
}

// Helper methods for category checking.
func (n *Node) IsTrigger() bool {
	return n.Category() == CategoryTrigger
}

func (n *Node) IsAction() bool {
	return n.Category() == CategoryAction
}

func (n *Node) IsQuantum() bool {
	return n.Category() == CategoryQuantum
}

// PortByID returns the port with the given id.
func (n *Node) PortByID(id string) (Port, bool) {
	for _, p := range n.Ports {
		if p.ID == id {
			return p, true
		}
	}

	return Port{}, false
}

// InputPorts returns the input ports in declaration order.
func (n *Node) InputPorts() []Port {
	return n.portsByDirection(PortDirectionIn)
}

// OutputPorts returns the output ports in declaration order.
func (n *Node) OutputPorts() []Port {
	return n.portsByDirection(PortDirectionOut)
}

func (n *Node) portsByDirection(d PortDirection) []Port {
	ports := make([]Port, 0, len(n.Ports))

	for _, p := range n.Ports {
		if p.Direction == d {
			ports = append(ports, p)
		}
	}

	return ports
}
