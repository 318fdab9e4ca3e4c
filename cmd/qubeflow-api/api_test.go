package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gofiber/fiber/v3"
	"github.com/qubeflow/qubeflow/pkg/channels/gochannel"
	"github.com/qubeflow/qubeflow/pkg/eventbus"
	"github.com/qubeflow/qubeflow/pkg/events"
	"github.com/qubeflow/qubeflow/pkg/persistence/file"
	"github.com/qubeflow/qubeflow/pkg/registry"
	"github.com/qubeflow/qubeflow/pkg/testutil"
	"github.com/qubeflow/qubeflow/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the subscriber goroutine to write to.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestApp(t *testing.T, publisher eventbus.EventPublisher) *fiber.App {
	t.Helper()

	persistence := file.NewPersistence(t.TempDir())
	require.NoError(t, persistence.WorkflowRepository().Save(context.Background(), testutil.SecuredPipeline()))

	reg := registry.NewRegistry(discardLogger())
	reg.RegisterDefaultNodes()

	api := NewAPI(discardLogger(), persistence, reg, publisher, nil, validation.PolicyFirstDiscovery)

	return api.App()
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp(t, nil)

	status, body := get(t, app, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Qubeflow API", body)
}

func TestAPI_Probes(t *testing.T) {
	app := setupTestApp(t, nil)

	for _, path := range []string{"/livez", "/readyz"} {
		status, body := get(t, app, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "OK", body, path)
	}
}

func TestAPI_RoutesAreMounted(t *testing.T) {
	app := setupTestApp(t, nil)

	status, _ := get(t, app, "/workflows/wf-test")
	assert.Equal(t, http.StatusOK, status)

	status, body := get(t, app, "/workflows/wf-test/aeonmi")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "workflow test_workflow {")

	status, _ = get(t, app, "/node-types")
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_ValidationEventsReachAuditLog(t *testing.T) {
	pub, sub := gochannel.CreateTestChannel(watermill.NopLogger{})
	bus := eventbus.NewWatermillEventBus(pub, sub)

	t.Cleanup(func() { _ = bus.Close() })

	out := &syncBuffer{}
	audit := slog.New(slog.NewTextHandler(out, nil))

	require.NoError(t, subscribeAuditLog(t.Context(), bus, audit))

	app := setupTestApp(t, bus)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/workflows/wf-test/validate", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Workflow validated")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "workflow_id=wf-test")
	assert.Contains(t, out.String(), "valid=true")
}

func TestLogAuditEvent(t *testing.T) {
	var out bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&out, nil))

	logAuditEvent(context.Background(), logger, &events.WorkflowVersionPromoted{
		BaseEvent:         events.NewBaseEvent(events.WorkflowVersionPromotedEvent, "wf-1"),
		VersionID:         "v2",
		ArchivedVersionID: "v1",
	})

	assert.Contains(t, out.String(), "Workflow version promoted")
	assert.Contains(t, out.String(), "archived_version_id=v1")
}
