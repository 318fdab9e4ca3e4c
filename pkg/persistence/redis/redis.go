// Package redis provides a Redis persistence implementation for workflows.
package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qubeflow/qubeflow/pkg/persistence"
	goredis "github.com/redis/go-redis/v9"
)

// Persistence implements the persistence layer on top of a Redis server.
type Persistence struct {
	client       *goredis.Client
	logger       *slog.Logger
	workflowRepo *WorkflowRepository
}

// NewPersistence connects to the server addressed by a redis:// or rediss:// URL.
func NewPersistence(ctx context.Context, logger *slog.Logger, redisURL string) (*Persistence, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(opts)

	err = client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Persistence{
		client:       client,
		logger:       logger,
		workflowRepo: NewWorkflowRepository(client, logger),
	}, nil
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

// HealthCheck verifies the server answers PING.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	err := p.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
