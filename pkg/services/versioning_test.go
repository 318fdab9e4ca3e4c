package services

import (
	"errors"
	"testing"
	"time"

	"github.com/qubeflow/qubeflow/pkg/eventbus"
	"github.com/qubeflow/qubeflow/pkg/mocks"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"github.com/qubeflow/qubeflow/pkg/testutil"
	"github.com/qubeflow/qubeflow/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVersioning(p persistence.Persistence, publisher eventbus.EventPublisher) *Versioning {
	svc := NewVersioning(
		p,
		NewValidation(p, nil, nil, discardLogger(), validation.PolicyFirstDiscovery),
		publisher,
		discardLogger(),
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	return svc
}

func TestVersioning_Compile(t *testing.T) {
	workflow := testutil.SecuredPipeline()
	svc := newVersioning(seed(t, workflow), nil)

	source, err := svc.Compile(t.Context(), workflow.ID)
	require.NoError(t, err)
	assert.Contains(t, source, "workflow test_workflow {")

	_, err = svc.Compile(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestVersioning_CreateVersion(t *testing.T) {
	workflow := testutil.SecuredPipeline()
	p := seed(t, workflow)

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, workflow.ID, mock.AnythingOfType("events.WorkflowVersionCreated")).Return(nil).Twice()

	svc := newVersioning(p, bus)

	first, err := svc.CreateVersion(t.Context(), workflow.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "v1", first.Label)
	assert.Equal(t, models.VersionStatusExperimental, first.Status)
	assert.Nil(t, first.ParentVersionID)
	assert.NotEmpty(t, first.AeonmiSource)
	assert.Equal(t, time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC), first.CreatedAt)

	bus.On("Publish", mock.Anything, workflow.ID, mock.AnythingOfType("events.WorkflowVersionPromoted")).Return(nil).Once()

	_, err = svc.PromoteVersion(t.Context(), workflow.ID, first.ID)
	require.NoError(t, err)

	second, err := svc.CreateVersion(t.Context(), workflow.ID, "faster checkout")
	require.NoError(t, err)

	assert.Equal(t, "faster checkout", second.Label)
	require.NotNil(t, second.ParentVersionID)
	assert.Equal(t, first.ID, *second.ParentVersionID)

	versions, err := svc.ListVersions(t.Context(), workflow.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)

	bus.AssertExpectations(t)
}

func TestVersioning_ListVersions_Empty(t *testing.T) {
	workflow := testutil.SecuredPipeline()
	svc := newVersioning(seed(t, workflow), nil)

	versions, err := svc.ListVersions(t.Context(), workflow.ID)
	require.NoError(t, err)
	assert.NotNil(t, versions)
	assert.Empty(t, versions)
}

func TestVersioning_PromoteVersion(t *testing.T) {
	workflow := testutil.SecuredPipeline()
	svc := newVersioning(seed(t, workflow), nil)

	first, err := svc.CreateVersion(t.Context(), workflow.ID, "")
	require.NoError(t, err)

	second, err := svc.CreateVersion(t.Context(), workflow.ID, "")
	require.NoError(t, err)

	promoted, err := svc.PromoteVersion(t.Context(), workflow.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusActive, promoted.Status)
	assert.Equal(t, first.ID, promoted.CurrentVersionID)

	_, err = svc.PromoteVersion(t.Context(), workflow.ID, first.ID)
	require.ErrorIs(t, err, ErrVersionAlreadyLive)
	assert.True(t, IsConflictError(err))

	promoted, err = svc.PromoteVersion(t.Context(), workflow.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, promoted.CurrentVersionID)

	old, ok := promoted.VersionByID(first.ID)
	require.True(t, ok)
	assert.Equal(t, models.VersionStatusArchived, old.Status)

	live, ok := promoted.VersionByID(second.ID)
	require.True(t, ok)
	assert.Equal(t, models.VersionStatusLive, live.Status)

	// Rolling back to an archived version is allowed.
	promoted, err = svc.PromoteVersion(t.Context(), workflow.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, promoted.CurrentVersionID)
}

func TestVersioning_PromoteVersion_Invalid(t *testing.T) {
	// The action is reachable without passing the Qube node.
	workflow := testutil.CreateTestWorkflow(
		[]models.Node{testutil.Trigger("T"), testutil.Qube("Q"), testutil.Action("A")},
		[]models.Edge{testutil.Link("e1", "T", "A"), testutil.Link("e2", "T", "Q")},
		testutil.WithQubeSecurity(),
	)
	p := seed(t, workflow)
	svc := newVersioning(p, nil)

	version, err := svc.CreateVersion(t.Context(), workflow.ID, "")
	require.NoError(t, err)

	_, err = svc.PromoteVersion(t.Context(), workflow.ID, version.ID)
	require.ErrorIs(t, err, ErrValidationFailed)

	var invalid *WorkflowInvalidError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, workflow.ID, invalid.WorkflowID)
	assert.Contains(t, invalid.Result.Codes(), validation.CodeQuantumPolicy)

	stored, err := p.WorkflowRepository().GetByID(t.Context(), workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusDraft, stored.Status)
	assert.Empty(t, stored.CurrentVersionID)

	_, err = svc.PromoteVersion(t.Context(), workflow.ID, "ghost")
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestVersioning_PromoteVersion_StaleSource(t *testing.T) {
	workflow := testutil.CreateTestWorkflow(
		[]models.Node{testutil.Trigger("T"), testutil.Qube("Q"), testutil.Action("A")},
		[]models.Edge{testutil.Link("e1", "T", "A")},
		testutil.WithQubeSecurity(),
	)
	p := seed(t, workflow)
	svc := newVersioning(p, nil)

	insecure, err := svc.CreateVersion(t.Context(), workflow.ID, "insecure")
	require.NoError(t, err)
	assert.Contains(t, insecure.AeonmiSource, "edge t.out -> a.in")

	stored, err := p.WorkflowRepository().GetByID(t.Context(), workflow.ID)
	require.NoError(t, err)

	stored.Edges = []models.Edge{testutil.Link("e1", "T", "Q"), testutil.Link("e2", "Q", "A")}
	require.NoError(t, p.WorkflowRepository().Save(t.Context(), stored))

	_, err = svc.PromoteVersion(t.Context(), workflow.ID, insecure.ID)
	require.ErrorIs(t, err, ErrVersionStale)
	assert.True(t, IsConflictError(err))

	stored, err = p.WorkflowRepository().GetByID(t.Context(), workflow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowStatusDraft, stored.Status)
	assert.Empty(t, stored.CurrentVersionID)

	version, ok := stored.VersionByID(insecure.ID)
	require.True(t, ok)
	assert.Equal(t, models.VersionStatusExperimental, version.Status)

	secured, err := svc.CreateVersion(t.Context(), workflow.ID, "secured")
	require.NoError(t, err)

	promoted, err := svc.PromoteVersion(t.Context(), workflow.ID, secured.ID)
	require.NoError(t, err)
	assert.Equal(t, secured.ID, promoted.CurrentVersionID)
	assert.NotContains(t, promoted.Versions[1].AeonmiSource, "edge t.out -> a.in")
}

func TestVersioning_ArchiveVersion(t *testing.T) {
	workflow := testutil.SecuredPipeline()
	p := seed(t, workflow)

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, workflow.ID, mock.Anything).Return(nil)

	svc := newVersioning(p, bus)

	live, err := svc.CreateVersion(t.Context(), workflow.ID, "")
	require.NoError(t, err)

	experiment, err := svc.CreateVersion(t.Context(), workflow.ID, "")
	require.NoError(t, err)

	_, err = svc.PromoteVersion(t.Context(), workflow.ID, live.ID)
	require.NoError(t, err)

	_, err = svc.ArchiveVersion(t.Context(), workflow.ID, live.ID)
	require.ErrorIs(t, err, ErrCannotArchiveLive)

	archived, err := svc.ArchiveVersion(t.Context(), workflow.ID, experiment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VersionStatusArchived, archived.Status)

	again, err := svc.ArchiveVersion(t.Context(), workflow.ID, experiment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VersionStatusArchived, again.Status)

	_, err = svc.ArchiveVersion(t.Context(), workflow.ID, "ghost")
	assert.ErrorIs(t, err, ErrVersionNotFound)
	assert.True(t, IsNotFoundError(err))

	bus.AssertCalled(t, "Publish", mock.Anything, workflow.ID, mock.AnythingOfType("events.WorkflowVersionArchived"))
	bus.AssertNumberOfCalls(t, "Publish", 4)
}
