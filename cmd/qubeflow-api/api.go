// Package main provides the Qubeflow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/qubeflow/qubeflow/pkg/eventbus"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"github.com/qubeflow/qubeflow/pkg/registry"
	"github.com/qubeflow/qubeflow/pkg/services"
	"github.com/qubeflow/qubeflow/pkg/validation"
	"github.com/qubeflow/qubeflow/pkg/web"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	publisher   eventbus.EventPublisher
	tracer      trace.Tracer
	policyMode  validation.PolicyMode
	validate    *validator.Validate
}

// NewAPI wires the services behind the HTTP handlers. publisher and tracer may be nil.
func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	publisher eventbus.EventPublisher,
	tracer trace.Tracer,
	policyMode validation.PolicyMode,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		publisher:   publisher,
		tracer:      tracer,
		policyMode:  policyMode,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	validationService := services.NewValidation(a.persistence, a.publisher, a.tracer, a.logger, a.policyMode)

	handlers := web.NewAPIHandlers(
		services.NewWorkflow(a.persistence),
		services.NewGraph(a.persistence, a.registry),
		validationService,
		services.NewVersioning(a.persistence, validationService, a.publisher, a.logger),
		a.validate,
		a.registry,
		a.logger,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Qubeflow API")
	})

	handlers.RegisterRoutes(app)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
