package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "qubeflow:workflow:"
	indexKey  = "qubeflow:workflows"
)

// WorkflowRepository stores each workflow as a JSON string and keeps the ids in a sorted
// set scored by creation time.
type WorkflowRepository struct {
	client goredis.UniversalClient
	logger *slog.Logger
}

func NewWorkflowRepository(client goredis.UniversalClient, logger *slog.Logger) *WorkflowRepository {
	return &WorkflowRepository{client: client, logger: logger}
}

func workflowKey(id string) string {
	return keyPrefix + id
}

// ListWorkflows loads every indexed workflow and filters, sorts and pages in memory.
func (r *WorkflowRepository) ListWorkflows(ctx context.Context, opts persistence.ListWorkflowsOptions) (*persistence.WorkflowListResult, error) {
	opts, err := persistence.NormalizeListOptions(opts)
	if err != nil {
		return nil, err
	}

	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow index: %w", err)
	}

	if len(ids) == 0 {
		return persistence.ListInMemory(nil, opts), nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, workflowKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows: %w", err)
	}

	all := make([]*models.Workflow, 0, len(values))

	for i, value := range values {
		document, ok := value.(string)
		if !ok {
			r.logger.WarnContext(ctx, "Indexed workflow has no document", "workflow_id", ids[i])

			continue
		}

		workflow, err := decodeDocument(document)
		if err != nil {
			return nil, err
		}

		all = append(all, workflow)
	}

	return persistence.ListInMemory(all, opts), nil
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	document, err := r.client.Get(ctx, workflowKey(id)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, fmt.Errorf("failed to fetch workflow %s: %w", id, err)
	}

	return decodeDocument(document)
}

// Save writes the document and its index entry in one transaction.
func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	now := time.Now().UTC()

	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	document, err := json.Marshal(workflow)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow %s: %w", workflow.ID, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, workflowKey(workflow.ID), document, 0)
		pipe.ZAdd(ctx, indexKey, goredis.Z{
			Score:  float64(workflow.CreatedAt.UnixMilli()),
			Member: workflow.ID,
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save workflow %s: %w", workflow.ID, err)
	}

	return nil
}

func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	var deleted *goredis.IntCmd

	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		deleted = pipe.Del(ctx, workflowKey(id))
		pipe.ZRem(ctx, indexKey, id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	if deleted.Val() == 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	return nil
}

func decodeDocument(document string) (*models.Workflow, error) {
	var workflow models.Workflow

	err := json.Unmarshal([]byte(document), &workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow document: %w", err)
	}

	return &workflow, nil
}
