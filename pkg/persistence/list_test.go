package persistence_test

import (
	"testing"
	"time"

	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeListOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    persistence.ListWorkflowsOptions
		want    persistence.ListWorkflowsOptions
		wantErr error
	}{
		{
			name: "defaults",
			opts: persistence.ListWorkflowsOptions{},
			want: persistence.ListWorkflowsOptions{Limit: 20, SortBy: "created_at", SortOrder: "desc"},
		},
		{
			name: "limit above max is reset",
			opts: persistence.ListWorkflowsOptions{Limit: 500, Offset: -3, SortBy: "name", SortOrder: "asc"},
			want: persistence.ListWorkflowsOptions{Limit: 20, SortBy: "name", SortOrder: "asc"},
		},
		{
			name:    "sql injection attempt is rejected",
			opts:    persistence.ListWorkflowsOptions{SortBy: "name; DROP TABLE workflows; --"},
			wantErr: persistence.ErrInvalidSortField,
		},
		{
			name:    "unknown order is rejected",
			opts:    persistence.ListWorkflowsOptions{SortOrder: "random"},
			wantErr: persistence.ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := persistence.NormalizeListOptions(tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListInMemory(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	active := models.WorkflowStatusActive

	all := []*models.Workflow{
		{ID: "a", Name: "Charlie", OwnerID: "u1", Status: models.WorkflowStatusDraft, CreatedAt: base},
		{ID: "b", Name: "Alpha", OwnerID: "u1", Status: models.WorkflowStatusActive, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Name: "Bravo", OwnerID: "u2", Status: models.WorkflowStatusActive, CreatedAt: base.Add(2 * time.Hour)},
	}

	ids := func(result *persistence.WorkflowListResult) []string {
		out := make([]string, 0, len(result.Workflows))
		for _, w := range result.Workflows {
			out = append(out, w.ID)
		}

		return out
	}

	t.Run("newest first by default", func(t *testing.T) {
		opts, err := persistence.NormalizeListOptions(persistence.ListWorkflowsOptions{})
		require.NoError(t, err)

		result := persistence.ListInMemory(append([]*models.Workflow(nil), all...), opts)
		assert.Equal(t, []string{"c", "b", "a"}, ids(result))
		assert.Equal(t, int64(3), result.TotalCount)
		assert.False(t, result.HasNextPage)
	})

	t.Run("filters by owner and status", func(t *testing.T) {
		opts, err := persistence.NormalizeListOptions(persistence.ListWorkflowsOptions{OwnerID: "u1", Status: &active})
		require.NoError(t, err)

		result := persistence.ListInMemory(append([]*models.Workflow(nil), all...), opts)
		assert.Equal(t, []string{"b"}, ids(result))
	})

	t.Run("pages by name", func(t *testing.T) {
		opts, err := persistence.NormalizeListOptions(persistence.ListWorkflowsOptions{Limit: 2, SortBy: "name", SortOrder: "asc"})
		require.NoError(t, err)

		first := persistence.ListInMemory(append([]*models.Workflow(nil), all...), opts)
		assert.Equal(t, []string{"b", "c"}, ids(first))
		assert.True(t, first.HasNextPage)

		opts.Offset = 2
		second := persistence.ListInMemory(append([]*models.Workflow(nil), all...), opts)
		assert.Equal(t, []string{"a"}, ids(second))
		assert.False(t, second.HasNextPage)

		opts.Offset = 10
		empty := persistence.ListInMemory(append([]*models.Workflow(nil), all...), opts)
		assert.Empty(t, empty.Workflows)
		assert.Equal(t, int64(3), empty.TotalCount)
	})
}
