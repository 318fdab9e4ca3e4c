// Package registry catalogs the node types a workflow can use: their default ports and
// the JSON Schema their config must satisfy.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/robfig/cron/v3"
	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrUnknownNodeType is returned for a type that is neither registered nor carries a
	// category prefix.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrInvalidConfig is returned when a node config does not satisfy its schema.
	ErrInvalidConfig = errors.New("invalid node config")
)

// NodeSpec describes a registered node type.
type NodeSpec struct {
	Type        models.NodeType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Ports       []models.Port   `json:"ports"`
	Schema      map[string]any  `json:"schema,omitempty"`
}

type Registry struct {
	logger *slog.Logger
	specs  map[models.NodeType]*NodeSpec
	order  []models.NodeType
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger: log,
		specs:  make(map[models.NodeType]*NodeSpec),
	}
}

// Register adds or replaces a node type. The category is always derived from the type.
func (r *Registry) Register(spec NodeSpec) {
	spec.Category = models.Classify(spec.Type)

	if _, exists := r.specs[spec.Type]; !exists {
		r.order = append(r.order, spec.Type)
	}

	r.specs[spec.Type] = &spec

	r.logger.Debug("Registered node type", "type", spec.Type, "category", spec.Category)
}

// Get returns the spec of a registered type.
func (r *Registry) Get(nodeType models.NodeType) (*NodeSpec, bool) {
	spec, ok := r.specs[nodeType]

	return spec, ok
}

// All returns the registered specs in registration order.
func (r *Registry) All() []*NodeSpec {
	specs := make([]*NodeSpec, 0, len(r.order))
	for _, t := range r.order {
		specs = append(specs, r.specs[t])
	}

	return specs
}

// DefaultPorts returns a copy of the default ports of a registered type.
func (r *Registry) DefaultPorts(nodeType models.NodeType) []models.Port {
	spec, ok := r.specs[nodeType]
	if !ok {
		return nil
	}

	return append([]models.Port(nil), spec.Ports...)
}

// ValidateConfig checks a node config against the schema of its type. Unregistered
// types that carry a category prefix are accepted as-is.
func (r *Registry) ValidateConfig(nodeType models.NodeType, config models.Config) error {
	spec, ok := r.specs[nodeType]
	if !ok {
		if models.Classify(nodeType) == models.CategoryOther {
			return fmt.Errorf("%w: %s", ErrUnknownNodeType, nodeType)
		}

		return nil
	}

	if spec.Schema != nil {
		if err := validateJSONSchema(config.Map(), spec.Schema); err != nil {
			return err
		}
	}

	if nodeType == models.NodeTypeTriggerSchedule {
		expr, _ := config.String("cron")
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("%w: cron: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// HealthCheck reports whether node types have been registered.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.specs) == 0 {
		return "No node types registered", false
	}

	return fmt.Sprintf("%d node types registered", len(r.specs)), true
}

func validateJSONSchema(data any, schema map[string]any) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	dataLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("failed to evaluate config schema: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}
