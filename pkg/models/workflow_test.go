package models

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWorkflow() *Workflow {
	return &Workflow{
		ID:      "wf-123",
		OwnerID: "user-456",
		Name:    "Lead Intake",
		Status:  WorkflowStatusDraft,
		Nodes: []Node{
			{ID: "hook", Type: NodeTypeTriggerWebhook, Ports: []Port{OutPort("out")}},
			{ID: "crm", Type: NodeTypeActionHTTP, Ports: []Port{InPort("in")}},
		},
		Edges: []Edge{
			{ID: "e1", From: Endpoint{NodeID: "hook", PortID: "out"}, To: Endpoint{NodeID: "crm", PortID: "in"}},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestWorkflow_Validation_Valid(t *testing.T) {
	validate := validator.New()
	assert.NoError(t, validate.Struct(validWorkflow()))
}

func TestWorkflow_Validation_FieldErrors(t *testing.T) {
	temperature := 3.5
	zeroLatency := 0.0

	testCases := []struct {
		name   string
		mutate func(w *Workflow)
		field  string
		tag    string
	}{
		{
			name:   "missing name",
			mutate: func(w *Workflow) { w.Name = "" },
			field:  "Name",
			tag:    "required",
		},
		{
			name:   "short name",
			mutate: func(w *Workflow) { w.Name = "ab" },
			field:  "Name",
			tag:    "min",
		},
		{
			name:   "unknown status",
			mutate: func(w *Workflow) { w.Status = "running" },
			field:  "Status",
			tag:    "oneof",
		},
		{
			name:   "node without type",
			mutate: func(w *Workflow) { w.Nodes[0].Type = "" },
			field:  "Type",
			tag:    "required",
		},
		{
			name:   "port with bad direction",
			mutate: func(w *Workflow) { w.Nodes[1].Ports[0].Direction = "sideways" },
			field:  "Direction",
			tag:    "oneof",
		},
		{
			name:   "edge without target port",
			mutate: func(w *Workflow) { w.Edges[0].To.PortID = "" },
			field:  "PortID",
			tag:    "required",
		},
		{
			name: "micro ai temperature out of range",
			mutate: func(w *Workflow) {
				w.Nodes[1].MicroAIConfig = &MicroAIConfig{Model: "gpt", Temperature: &temperature}
			},
			field: "Temperature",
			tag:   "max",
		},
		{
			name: "non-positive latency budget",
			mutate: func(w *Workflow) {
				w.EvolutionPolicy = &EvolutionPolicy{
					KPIPrimary:  KPIRevenue,
					Constraints: EvolutionConstraints{MaxLatencyMs: &zeroLatency},
				}
			},
			field: "MaxLatencyMs",
			tag:   "gt",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := validWorkflow()
			tc.mutate(w)

			err := validator.New().Struct(w)
			require.Error(t, err)

			var validationErrors validator.ValidationErrors
			require.True(t, errors.As(err, &validationErrors))
			require.Len(t, validationErrors, 1)
			assert.Equal(t, tc.field, validationErrors[0].Field())
			assert.Equal(t, tc.tag, validationErrors[0].Tag())
		})
	}
}

func TestWorkflow_IsEditable(t *testing.T) {
	w := validWorkflow()
	assert.True(t, w.IsEditable())

	w.Status = WorkflowStatusPaused
	assert.True(t, w.IsEditable())

	w.Status = WorkflowStatusActive
	assert.False(t, w.IsEditable())
}

func TestWorkflow_RequiresQubeSecurity(t *testing.T) {
	w := validWorkflow()
	assert.False(t, w.RequiresQubeSecurity())

	w.EvolutionPolicy = &EvolutionPolicy{Enabled: true}
	assert.False(t, w.RequiresQubeSecurity())

	w.EvolutionPolicy.Constraints.MustUseQubeSecurity = true
	assert.True(t, w.RequiresQubeSecurity())
}
