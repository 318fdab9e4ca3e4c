package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/persistence/file"
	"github.com/qubeflow/qubeflow/pkg/registry"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultRegistry() *registry.Registry {
	reg := registry.NewRegistry(discardLogger())
	reg.RegisterDefaultNodes()

	return reg
}

// seed stores workflows in a fresh file persistence.
func seed(t *testing.T, workflows ...*models.Workflow) *file.Persistence {
	t.Helper()

	p := file.NewPersistence(t.TempDir())
	for _, w := range workflows {
		require.NoError(t, p.WorkflowRepository().Save(context.Background(), w))
	}

	return p
}
