// Package persistence provides the storage abstraction for workflows.
package persistence

import (
	"context"

	"github.com/qubeflow/qubeflow/pkg/models"
)

type Persistence interface {
	WorkflowRepository() WorkflowRepository

	// HealthCheck reports whether the backing store is reachable.
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}

// WorkflowRepository stores whole workflow documents, versions included.
type WorkflowRepository interface {
	ListWorkflows(ctx context.Context, opts ListWorkflowsOptions) (*WorkflowListResult, error)

	// GetByID returns ErrWorkflowNotFound when no workflow has the id.
	GetByID(ctx context.Context, id string) (*models.Workflow, error)

	// Save inserts or replaces the workflow and stamps CreatedAt/UpdatedAt.
	Save(ctx context.Context, workflow *models.Workflow) error

	// Delete returns ErrWorkflowNotFound when no workflow has the id.
	Delete(ctx context.Context, id string) error
}

// ListWorkflowsOptions filters and pages a workflow listing.
type ListWorkflowsOptions struct {
	Limit     int
	Offset    int
	OwnerID   string
	Status    *models.WorkflowStatus
	SortBy    string // created_at, updated_at or name
	SortOrder string // asc or desc
}

type WorkflowListResult struct {
	Workflows   []*models.Workflow `json:"workflows"`
	TotalCount  int64              `json:"totalCount"`
	HasNextPage bool               `json:"hasNextPage"`
}
