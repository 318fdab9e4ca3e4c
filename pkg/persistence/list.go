package persistence

import (
	"fmt"
	"sort"

	"github.com/qubeflow/qubeflow/pkg/models"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// SortColumns maps the accepted sort fields to their column names.
var SortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
}

// NormalizeListOptions applies listing defaults and rejects sort parameters outside the allowlist.
func NormalizeListOptions(opts ListWorkflowsOptions) (ListWorkflowsOptions, error) {
	if opts.Limit <= 0 || opts.Limit > MaxListLimit {
		opts.Limit = DefaultListLimit
	}

	if opts.Offset < 0 {
		opts.Offset = 0
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	if _, ok := SortColumns[opts.SortBy]; !ok {
		return opts, fmt.Errorf("%w: %s", ErrInvalidSortField, opts.SortBy)
	}

	if opts.SortOrder != "asc" && opts.SortOrder != "desc" {
		return opts, fmt.Errorf("%w: %s", ErrInvalidSortOrder, opts.SortOrder)
	}

	return opts, nil
}

// ListInMemory filters, sorts and pages an already loaded set of workflows. Stores
// without query support use it. opts must be normalized.
func ListInMemory(all []*models.Workflow, opts ListWorkflowsOptions) *WorkflowListResult {
	filtered := make([]*models.Workflow, 0, len(all))

	for _, workflow := range all {
		if opts.OwnerID != "" && workflow.OwnerID != opts.OwnerID {
			continue
		}

		if opts.Status != nil && workflow.Status != *opts.Status {
			continue
		}

		filtered = append(filtered, workflow)
	}

	sortWorkflows(filtered, opts.SortBy, opts.SortOrder)

	totalCount := int64(len(filtered))

	if opts.Offset >= len(filtered) {
		return &WorkflowListResult{
			Workflows:  make([]*models.Workflow, 0),
			TotalCount: totalCount,
		}
	}

	endIdx := min(opts.Offset+opts.Limit, len(filtered))

	return &WorkflowListResult{
		Workflows:   filtered[opts.Offset:endIdx],
		TotalCount:  totalCount,
		HasNextPage: endIdx < len(filtered),
	}
}

func sortWorkflows(workflows []*models.Workflow, sortBy, sortOrder string) {
	sort.SliceStable(workflows, func(i, j int) bool {
		a, b := workflows[i], workflows[j]
		if sortOrder == "desc" {
			a, b = b, a
		}

		switch sortBy {
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "name":
			return a.Name < b.Name
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
