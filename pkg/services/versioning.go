package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/qubeflow/qubeflow/pkg/aeonmi"
	"github.com/qubeflow/qubeflow/pkg/eventbus"
	"github.com/qubeflow/qubeflow/pkg/events"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/otelhelper"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
)

// Versioning compiles workflows into immutable versions and manages which one is live.
type Versioning struct {
	persistence persistence.Persistence
	validation  *Validation
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

func NewVersioning(
	persistence persistence.Persistence,
	validation *Validation,
	publisher eventbus.EventPublisher,
	logger *slog.Logger,
) *Versioning {
	return &Versioning{
		persistence: persistence,
		validation:  validation,
		publisher:   publisher,
		logger:      logger.With("module", "versioning"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Compile renders the stored workflow as Aeonmi source.
func (v *Versioning) Compile(ctx context.Context, workflowID string) (string, error) {
	workflow, err := v.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return "", err
	}

	return aeonmi.Compile(workflow), nil
}

// ListVersions returns the version history in creation order.
func (v *Versioning) ListVersions(ctx context.Context, workflowID string) ([]models.WorkflowVersion, error) {
	workflow, err := v.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if workflow.Versions == nil {
		return []models.WorkflowVersion{}, nil
	}

	return workflow.Versions, nil
}

// CreateVersion snapshots the current graph as a new experimental version whose parent
// is the current version. An empty label becomes v<n>.
func (v *Versioning) CreateVersion(ctx context.Context, workflowID, label string) (*models.WorkflowVersion, error) {
	workflow, err := v.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if label == "" {
		label = "v" + strconv.Itoa(len(workflow.Versions)+1)
	}

	version := models.WorkflowVersion{
		ID:           uuid.New().String(),
		Label:        label,
		CreatedAt:    v.now(),
		AeonmiSource: aeonmi.Compile(workflow),
		Status:       models.VersionStatusExperimental,
	}

	if workflow.CurrentVersionID != "" {
		parent := workflow.CurrentVersionID
		version.ParentVersionID = &parent
	}

	workflow.Versions = append(workflow.Versions, version)

	err = v.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to save version: %w", err)
	}

	v.logger.InfoContext(ctx, "Created workflow version",
		"workflow_id", workflowID,
		"version_id", version.ID,
		"label", label,
	)

	publish(ctx, v.logger, v.publisher, workflowID, events.WorkflowVersionCreated{
		BaseEvent:       events.NewBaseEvent(events.WorkflowVersionCreatedEvent, workflowID),
		VersionID:       version.ID,
		ParentVersionID: version.ParentVersionID,
		Label:           label,
	})

	return &version, nil
}

// PromoteVersion makes a version live. The workflow graph must still compile to the
// version's source and must validate. The previously live version is archived and the
// workflow becomes active.
func (v *Versioning) PromoteVersion(ctx context.Context, workflowID, versionID string) (*models.Workflow, error) {
	ctx, span := otelhelper.StartSpan(ctx, v.validation.tracer, "versioning.promote",
		attribute.String(otelhelper.WorkflowIDKey, workflowID),
		attribute.String(otelhelper.VersionIDKey, versionID),
	)
	defer span.End()

	workflow, err := v.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	version, ok := workflow.VersionByID(versionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, versionID)
	}

	if version.Status == models.VersionStatusLive {
		return nil, fmt.Errorf("%w: %s", ErrVersionAlreadyLive, versionID)
	}

	if aeonmi.Compile(workflow) != version.AeonmiSource {
		err := fmt.Errorf("%w: %s", ErrVersionStale, versionID)
		otelhelper.SetError(span, err)

		return nil, err
	}

	result, err := v.validation.Validate(ctx, workflow)
	if err != nil {
		return nil, err
	}

	if !result.Valid {
		err := &WorkflowInvalidError{WorkflowID: workflowID, Result: result}
		otelhelper.SetError(span, err)

		return nil, err
	}

	archivedID := ""

	for i := range workflow.Versions {
		if workflow.Versions[i].Status == models.VersionStatusLive {
			workflow.Versions[i].Status = models.VersionStatusArchived
			archivedID = workflow.Versions[i].ID
		}
	}

	version.Status = models.VersionStatusLive
	workflow.CurrentVersionID = versionID
	workflow.Status = models.WorkflowStatusActive

	err = v.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to promote version: %w", err)
	}

	v.logger.InfoContext(ctx, "Promoted workflow version",
		"workflow_id", workflowID,
		"version_id", versionID,
		"archived_version_id", archivedID,
	)

	publish(ctx, v.logger, v.publisher, workflowID, events.WorkflowVersionPromoted{
		BaseEvent:         events.NewBaseEvent(events.WorkflowVersionPromotedEvent, workflowID),
		VersionID:         versionID,
		ArchivedVersionID: archivedID,
	})

	return workflow, nil
}

// ArchiveVersion retires an experimental version. The live version cannot be archived
// directly; promote another one instead.
func (v *Versioning) ArchiveVersion(ctx context.Context, workflowID, versionID string) (*models.WorkflowVersion, error) {
	workflow, err := v.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	version, ok := workflow.VersionByID(versionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, versionID)
	}

	switch version.Status {
	case models.VersionStatusLive:
		return nil, fmt.Errorf("%w: %s", ErrCannotArchiveLive, versionID)
	case models.VersionStatusArchived:
		archived := *version

		return &archived, nil
	}

	version.Status = models.VersionStatusArchived
	archived := *version

	err = v.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to archive version: %w", err)
	}

	publish(ctx, v.logger, v.publisher, workflowID, events.WorkflowVersionArchived{
		BaseEvent: events.NewBaseEvent(events.WorkflowVersionArchivedEvent, workflowID),
		VersionID: versionID,
	})

	return &archived, nil
}
