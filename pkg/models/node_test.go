package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		nodeType NodeType
		expected Category
	}{
		{NodeTypeTriggerWebhook, CategoryTrigger},
		{NodeTypeTriggerSchedule, CategoryTrigger},
		{NodeTypeActionHTTP, CategoryAction},
		{NodeTypeActionDBWrite, CategoryAction},
		{NodeTypeQubeEncrypt, CategoryQuantum},
		{NodeTypeAIAgent, CategoryOther},
		{NodeTypeTransform, CategoryOther},
		{"TRIGGER_CUSTOM", CategoryTrigger},
		{"trigger_lowercase", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.nodeType), func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.nodeType))
		})
	}
}

func TestNode_Ports(t *testing.T) {
	node := Node{
		ID:    "n1",
		Type:  NodeTypeLogicMerge,
		Ports: []Port{InPort("a"), OutPort("out"), InPort("b")},
	}

	assert.Equal(t, []Port{InPort("a"), InPort("b")}, node.InputPorts())
	assert.Equal(t, []Port{OutPort("out")}, node.OutputPorts())

	p, ok := node.PortByID("b")
	assert.True(t, ok)
	assert.True(t, p.IsInput())

	_, ok = node.PortByID("missing")
	assert.False(t, ok)
}

func TestWorkflow_Lookups(t *testing.T) {
	w := &Workflow{
		Nodes:    []Node{{ID: "a"}, {ID: "b"}},
		Versions: []WorkflowVersion{{ID: "v1"}},
	}

	n, ok := w.NodeByID("b")
	assert.True(t, ok)
	assert.Equal(t, "b", n.ID)

	_, ok = w.VersionByID("v2")
	assert.False(t, ok)

	assert.False(t, w.RequiresQubeSecurity())

	w.EvolutionPolicy = &EvolutionPolicy{Constraints: EvolutionConstraints{MustUseQubeSecurity: true}}
	assert.True(t, w.RequiresQubeSecurity())
}
