package services

import (
	"context"
	"log/slog"

	"github.com/qubeflow/qubeflow/pkg/eventbus"
	"github.com/qubeflow/qubeflow/pkg/events"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/otelhelper"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"github.com/qubeflow/qubeflow/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Validation runs the graph validators over ad-hoc or stored workflows.
type Validation struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	tracer      trace.Tracer
	logger      *slog.Logger
	mode        validation.PolicyMode
}

// NewValidation creates a validation service. publisher may be nil, in which case no
// events are published.
func NewValidation(
	persistence persistence.Persistence,
	publisher eventbus.EventPublisher,
	tracer trace.Tracer,
	logger *slog.Logger,
	mode validation.PolicyMode,
) *Validation {
	if tracer == nil {
		tracer = otelhelper.NoopTracer()
	}

	return &Validation{
		persistence: persistence,
		publisher:   publisher,
		tracer:      tracer,
		logger:      logger.With("module", "validation"),
		mode:        mode,
	}
}

// Mode returns the security policy mode the service validates with.
func (v *Validation) Mode() validation.PolicyMode {
	return v.mode
}

// Validate checks a workflow that need not be stored.
func (v *Validation) Validate(ctx context.Context, workflow *models.Workflow) (validation.Result, error) {
	if workflow == nil {
		return validation.Result{}, ErrWorkflowNil
	}

	ctx, span := otelhelper.StartSpan(ctx, v.tracer, "validation.validate",
		attribute.String(otelhelper.WorkflowIDKey, workflow.ID),
		attribute.String(otelhelper.PolicyModeKey, string(v.mode)),
		attribute.Int(otelhelper.NodeCountKey, len(workflow.Nodes)),
		attribute.Int(otelhelper.EdgeCountKey, len(workflow.Edges)),
	)
	defer span.End()

	result := validation.ValidateWorkflow(workflow, validation.WithPolicyMode(v.mode))

	span.SetAttributes(
		attribute.Bool(otelhelper.ValidKey, result.Valid),
		attribute.Int(otelhelper.IssueCountKey, len(result.Issues)),
	)

	v.logger.DebugContext(ctx, "Validated workflow",
		"workflow_id", workflow.ID,
		"valid", result.Valid,
		"issues", len(result.Issues),
	)

	return result, nil
}

// ValidateByID validates a stored workflow and publishes the outcome.
func (v *Validation) ValidateByID(ctx context.Context, workflowID string) (validation.Result, error) {
	workflow, err := v.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return validation.Result{}, err
	}

	result, err := v.Validate(ctx, workflow)
	if err != nil {
		return validation.Result{}, err
	}

	codes := make([]string, 0, len(result.Issues))
	for _, code := range result.Codes() {
		codes = append(codes, string(code))
	}

	publish(ctx, v.logger, v.publisher, workflowID, events.WorkflowValidated{
		BaseEvent:  events.NewBaseEvent(events.WorkflowValidatedEvent, workflowID),
		Valid:      result.Valid,
		IssueCodes: codes,
	})

	return result, nil
}

// publish delivers an event when a publisher is configured. Failures are logged; the
// operation that produced the event has already succeeded.
func publish(ctx context.Context, logger *slog.Logger, publisher eventbus.EventPublisher, key string, event eventbus.Event) {
	if publisher == nil {
		return
	}

	err := publisher.Publish(ctx, key, event)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish event",
			"event_id", event.GetID(),
			"event_type", event.GetType(),
			"workflow_id", key,
			"error", err,
		)
	}
}
