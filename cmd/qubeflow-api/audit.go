package main

import (
	"context"
	"log/slog"

	"github.com/qubeflow/qubeflow/pkg/eventbus"
	"github.com/qubeflow/qubeflow/pkg/events"
)

// auditedEvents are the lifecycle events written to the audit log.
var auditedEvents = []events.EventType{
	events.WorkflowValidatedEvent,
	events.WorkflowVersionCreatedEvent,
	events.WorkflowVersionPromotedEvent,
	events.WorkflowVersionArchivedEvent,
}

// subscribeAuditLog logs every lifecycle event that crosses the bus.
func subscribeAuditLog(ctx context.Context, subscriber eventbus.EventSubscriber, logger *slog.Logger) error {
	for _, eventType := range auditedEvents {
		err := subscriber.Handle(eventType, func(ctx context.Context, event any) error {
			logAuditEvent(ctx, logger, event)

			return nil
		})
		if err != nil {
			return err
		}
	}

	return subscriber.Subscribe(ctx)
}

func logAuditEvent(ctx context.Context, logger *slog.Logger, event any) {
	switch e := event.(type) {
	case *events.WorkflowValidated:
		logger.InfoContext(ctx, "Workflow validated",
			"workflow_id", e.WorkflowID,
			"valid", e.Valid,
			"issue_codes", e.IssueCodes,
		)
	case *events.WorkflowVersionCreated:
		logger.InfoContext(ctx, "Workflow version created",
			"workflow_id", e.WorkflowID,
			"version_id", e.VersionID,
			"label", e.Label,
		)
	case *events.WorkflowVersionPromoted:
		logger.InfoContext(ctx, "Workflow version promoted",
			"workflow_id", e.WorkflowID,
			"version_id", e.VersionID,
			"archived_version_id", e.ArchivedVersionID,
		)
	case *events.WorkflowVersionArchived:
		logger.InfoContext(ctx, "Workflow version archived",
			"workflow_id", e.WorkflowID,
			"version_id", e.VersionID,
		)
	default:
		logger.WarnContext(ctx, "Unknown audit event", "event", event)
	}
}
