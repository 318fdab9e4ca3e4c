package registry

import (
	"log/slog"
	"testing"

	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	r := NewRegistry(slog.Default())
	r.RegisterDefaultNodes()

	return r
}

func TestRegistry_HealthCheck(t *testing.T) {
	empty := NewRegistry(slog.Default())
	msg, ok := empty.HealthCheck()
	assert.False(t, ok)
	assert.Equal(t, "No node types registered", msg)

	msg, ok = newTestRegistry().HealthCheck()
	assert.True(t, ok)
	assert.Equal(t, "15 node types registered", msg)
}

func TestRegistry_All_RegistrationOrder(t *testing.T) {
	specs := newTestRegistry().All()
	require.Len(t, specs, 15)

	assert.Equal(t, models.NodeTypeTriggerWebhook, specs[0].Type)
	assert.Equal(t, models.NodeTypeTransform, specs[len(specs)-1].Type)

	for _, spec := range specs {
		assert.Equal(t, models.Classify(spec.Type), spec.Category, spec.Type)
		assert.NotEmpty(t, spec.Ports, spec.Type)
	}
}

func TestRegistry_Register_ReplaceKeepsPosition(t *testing.T) {
	r := newTestRegistry()
	r.Register(NodeSpec{Type: models.NodeTypeTriggerWebhook, Title: "Inbound Hook"})

	specs := r.All()
	require.Len(t, specs, 15)
	assert.Equal(t, "Inbound Hook", specs[0].Title)
	assert.Equal(t, models.CategoryTrigger, specs[0].Category)
}

func TestRegistry_DefaultPorts_ReturnsCopy(t *testing.T) {
	r := newTestRegistry()

	ports := r.DefaultPorts(models.NodeTypeLogicBranch)
	require.Len(t, ports, 3)
	ports[0].ID = "mutated"

	again := r.DefaultPorts(models.NodeTypeLogicBranch)
	assert.Equal(t, "in", again[0].ID)

	assert.Nil(t, r.DefaultPorts("NOT_A_TYPE"))
}

func TestRegistry_ValidateConfig(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name     string
		nodeType models.NodeType
		config   models.Config
		wantErr  error
	}{
		{
			name:     "valid http action",
			nodeType: models.NodeTypeActionHTTP,
			config: models.NewConfig(
				models.ConfigEntry{Key: "url", Value: "https://api.example.com/hook"},
				models.ConfigEntry{Key: "method", Value: "POST"},
			),
		},
		{
			name:     "http action missing url",
			nodeType: models.NodeTypeActionHTTP,
			config:   models.NewConfig(models.ConfigEntry{Key: "method", Value: "POST"}),
			wantErr:  ErrInvalidConfig,
		},
		{
			name:     "http action with unsupported method",
			nodeType: models.NodeTypeActionHTTP,
			config: models.NewConfig(
				models.ConfigEntry{Key: "url", Value: "https://api.example.com"},
				models.ConfigEntry{Key: "method", Value: "TRACE"},
			),
			wantErr: ErrInvalidConfig,
		},
		{
			name:     "valid schedule",
			nodeType: models.NodeTypeTriggerSchedule,
			config:   models.NewConfig(models.ConfigEntry{Key: "cron", Value: "*/5 * * * *"}),
		},
		{
			name:     "schedule with malformed cron",
			nodeType: models.NodeTypeTriggerSchedule,
			config:   models.NewConfig(models.ConfigEntry{Key: "cron", Value: "every five minutes"}),
			wantErr:  ErrInvalidConfig,
		},
		{
			name:     "schedule without cron",
			nodeType: models.NodeTypeTriggerSchedule,
			config:   nil,
			wantErr:  ErrInvalidConfig,
		},
		{
			name:     "qube node accepts empty config",
			nodeType: models.NodeTypeQubeEncrypt,
			config:   nil,
		},
		{
			name:     "qube node rejects unknown algorithm",
			nodeType: models.NodeTypeQubeSign,
			config:   models.NewConfig(models.ConfigEntry{Key: "algorithm", Value: "rsa"}),
			wantErr:  ErrInvalidConfig,
		},
		{
			name:     "classifier needs two classes",
			nodeType: models.NodeTypeAIClassifier,
			config:   models.NewConfig(models.ConfigEntry{Key: "classes", Value: []any{"spam"}}),
			wantErr:  ErrInvalidConfig,
		},
		{
			name:     "agent has no schema",
			nodeType: models.NodeTypeAIAgent,
			config:   models.NewConfig(models.ConfigEntry{Key: "anything", Value: 1}),
		},
		{
			name:     "unregistered prefixed type is accepted",
			nodeType: "ACTION_SLACK",
			config:   models.NewConfig(models.ConfigEntry{Key: "channel", Value: "#ops"}),
		},
		{
			name:     "unregistered unprefixed type is rejected",
			nodeType: "SPREADSHEET",
			wantErr:  ErrUnknownNodeType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateConfig(tt.nodeType, tt.config)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
