package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/persistence/file"
	"github.com/qubeflow/qubeflow/pkg/registry"
	"github.com/qubeflow/qubeflow/pkg/services"
	"github.com/qubeflow/qubeflow/pkg/validation"
	"github.com/qubeflow/qubeflow/pkg/web"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, workflows ...*models.Workflow) (*fiber.App, *file.Persistence) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	persistence := file.NewPersistence(t.TempDir())

	for _, w := range workflows {
		require.NoError(t, persistence.WorkflowRepository().Save(context.Background(), w))
	}

	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultNodes()

	validationService := services.NewValidation(persistence, nil, nil, logger, validation.PolicyFirstDiscovery)

	handlers := web.NewAPIHandlers(
		services.NewWorkflow(persistence),
		services.NewGraph(persistence, reg),
		validationService,
		services.NewVersioning(persistence, validationService, nil, logger),
		validator.New(validator.WithRequiredStructEnabled()),
		reg,
		logger,
	)

	app := fiber.New()
	handlers.RegisterRoutes(app)

	return app, persistence
}

// doRequest sends body (raw string or JSON-encoded value) and returns the status and
// response body.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

type problemBody struct {
	Type   string             `json:"type"`
	Status int                `json:"status"`
	Detail string             `json:"detail"`
	Issues []validation.Issue `json:"issues"`
}

func decodeProblem(t *testing.T, body []byte) problemBody {
	t.Helper()

	var p problemBody
	require.NoError(t, json.Unmarshal(body, &p))

	return p
}

func stringPtr(s string) *string {
	return &s
}
