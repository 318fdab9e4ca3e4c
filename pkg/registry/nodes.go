package registry

import "github.com/qubeflow/qubeflow/pkg/models"

var (
	triggerPorts = []models.Port{{ID: "out", Label: "Event", Direction: models.PortDirectionOut}}
	passPorts    = []models.Port{
		{ID: "in", Label: "Input", Direction: models.PortDirectionIn},
		{ID: "out", Label: "Output", Direction: models.PortDirectionOut},
	}
	sinkPorts = []models.Port{{ID: "in", Label: "Input", Direction: models.PortDirectionIn}}
)

// RegisterDefaultNodes registers all built-in node types with the registry.
func (r *Registry) RegisterDefaultNodes() {
	// Triggers
	r.Register(NodeSpec{
		Type: models.NodeTypeTriggerWebhook, Title: "Webhook",
		Description: "Starts the workflow when an HTTP request arrives",
		Ports:       triggerPorts, Schema: webhookSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeTriggerSchedule, Title: "Schedule",
		Description: "Starts the workflow on a cron schedule",
		Ports:       triggerPorts, Schema: scheduleSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeTriggerEvent, Title: "Event",
		Description: "Starts the workflow when a named event is published",
		Ports:       triggerPorts, Schema: eventSchema,
	})

	// Actions
	r.Register(NodeSpec{
		Type: models.NodeTypeActionHTTP, Title: "HTTP Request",
		Description: "Calls an external HTTP endpoint",
		Ports:       sinkPorts, Schema: httpSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeActionEmail, Title: "Send Email",
		Description: "Sends an email",
		Ports:       sinkPorts, Schema: emailSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeActionDBWrite, Title: "Database Write",
		Description: "Writes a record to a database table",
		Ports:       sinkPorts, Schema: dbWriteSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeActionNotify, Title: "Notify",
		Description: "Pushes a notification to a channel",
		Ports:       sinkPorts, Schema: notifySchema,
	})

	// Quantum-secured
	r.Register(NodeSpec{
		Type: models.NodeTypeQubeEncrypt, Title: "Qube Encrypt",
		Description: "Encrypts the payload before it leaves the workflow",
		Ports:       passPorts, Schema: qubeSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeQubeSign, Title: "Qube Sign",
		Description: "Signs the payload",
		Ports:       passPorts, Schema: qubeSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeQubeKeyExchange, Title: "Qube Key Exchange",
		Description: "Negotiates a session key with the receiver",
		Ports:       passPorts, Schema: qubeSchema,
	})

	// AI, logic and transforms
	r.Register(NodeSpec{
		Type: models.NodeTypeAIAgent, Title: "AI Agent",
		Description: "Runs a micro agent over the payload",
		Ports:       passPorts,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeAIClassifier, Title: "AI Classifier",
		Description: "Labels the payload with one of the configured classes",
		Ports:       passPorts, Schema: classifierSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeLogicBranch, Title: "Branch",
		Description: "Routes the payload to one of two outputs",
		Ports: []models.Port{
			{ID: "in", Label: "Input", Direction: models.PortDirectionIn},
			{ID: "true", Label: "True", Direction: models.PortDirectionOut},
			{ID: "false", Label: "False", Direction: models.PortDirectionOut},
		},
		Schema: branchSchema,
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeLogicMerge, Title: "Merge",
		Description: "Waits for both inputs and combines them",
		Ports: []models.Port{
			{ID: "left", Label: "Left", Direction: models.PortDirectionIn},
			{ID: "right", Label: "Right", Direction: models.PortDirectionIn},
			{ID: "out", Label: "Output", Direction: models.PortDirectionOut},
		},
	})
	r.Register(NodeSpec{
		Type: models.NodeTypeTransform, Title: "Transform",
		Description: "Reshapes the payload with an expression",
		Ports:       passPorts, Schema: transformSchema,
	})
}
