// Package web provides HTTP handlers and REST API endpoints for workflow management.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/qubeflow/qubeflow/pkg/aeonmi"
	"github.com/qubeflow/qubeflow/pkg/models"
	"github.com/qubeflow/qubeflow/pkg/registry"
	"github.com/qubeflow/qubeflow/pkg/services"
)

type APIHandlers struct {
	workflowService   *services.Workflow
	graphService      *services.Graph
	validationService *services.Validation
	versioningService *services.Versioning
	validator         *validator.Validate
	registry          *registry.Registry
	logger            *slog.Logger
}

func NewAPIHandlers(
	workflowService *services.Workflow,
	graphService *services.Graph,
	validationService *services.Validation,
	versioningService *services.Versioning,
	validator *validator.Validate,
	registry *registry.Registry,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		workflowService:   workflowService,
		graphService:      graphService,
		validationService: validationService,
		versioningService: versioningService,
		validator:         validator,
		registry:          registry,
		logger:            logger,
	}
}

// RegisterRoutes mounts every API endpoint on router.
func (h *APIHandlers) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get("/node-types", h.GetNodeTypes)
	router.Post("/validate", h.ValidateWorkflowBody)
	router.Post("/compile", h.CompileWorkflowBody)

	w := router.Group("/workflows")
	w.Get("/", h.GetWorkflows)
	w.Post("/", h.CreateWorkflow)
	w.Get("/:id", h.GetWorkflow)
	w.Patch("/:id", h.UpdateWorkflow)
	w.Delete("/:id", h.DeleteWorkflow)
	w.Post("/:id/pause", h.PauseWorkflow)

	w.Post("/:id/nodes", h.CreateWorkflowNode)
	w.Patch("/:id/nodes/:nodeId", h.UpdateWorkflowNode)
	w.Delete("/:id/nodes/:nodeId", h.DeleteWorkflowNode)

	w.Post("/:id/edges", h.CreateWorkflowEdge)
	w.Delete("/:id/edges/:edgeId", h.DeleteWorkflowEdge)

	w.Post("/:id/validate", h.ValidateWorkflow)
	w.Get("/:id/aeonmi", h.GetWorkflowAeonmi)

	w.Get("/:id/versions", h.GetWorkflowVersions)
	w.Post("/:id/versions", h.CreateWorkflowVersion)
	w.Post("/:id/versions/:versionId/promote", h.PromoteWorkflowVersion)
	w.Post("/:id/versions/:versionId/archive", h.ArchiveWorkflowVersion)
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	req, err := h.parseListWorkflowsRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.workflowService.ListWorkflows(c.Context(), *req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// parseListWorkflowsRequest parses query parameters for listing workflows.
func (h *APIHandlers) parseListWorkflowsRequest(c fiber.Ctx) (*services.ListWorkflowsRequest, error) {
	req := &services.ListWorkflowsRequest{}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}

		req.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, err
		}

		req.Offset = offset
	}

	req.OwnerID = c.Query("owner_id")

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.WorkflowStatus(statusStr)
		req.Status = &status
	}

	req.SortBy = c.Query("sort_by")
	req.SortOrder = c.Query("sort_order")

	return req, nil
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	workflow, err := h.workflowService.FetchByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Qubeflow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Qubeflow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetNodeTypes(c fiber.Ctx) error {
	return c.JSON(h.registry.All())
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	workflow := &models.Workflow{
		Name:            req.Name,
		Description:     req.Description,
		OwnerID:         req.OwnerID,
		Nodes:           req.Nodes,
		Edges:           req.Edges,
		EvolutionPolicy: req.EvolutionPolicy,
	}

	created, err := h.workflowService.Create(c.Context(), workflow)
	if err != nil {
		return handleServiceError(c, err)
	}

	h.logger.InfoContext(c.Context(), "Created workflow", "workflow_id", created.ID, "owner_id", created.OwnerID)

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	existing, err := h.workflowService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}

	if req.Status != nil {
		existing.Status = *req.Status
	}

	if req.Nodes != nil {
		existing.Nodes = req.Nodes
	}

	if req.Edges != nil {
		existing.Edges = req.Edges
	}

	if req.EvolutionPolicy != nil {
		existing.EvolutionPolicy = req.EvolutionPolicy
	}

	updated, err := h.workflowService.Update(c.Context(), id, existing)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) PauseWorkflow(c fiber.Ctx) error {
	workflow, err := h.workflowService.Pause(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	err := h.workflowService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// bindWorkflow decodes an ad-hoc workflow body.
func (h *APIHandlers) bindWorkflow(c fiber.Ctx) (*models.Workflow, error) {
	var workflow models.Workflow
	if err := c.Bind().JSON(&workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// ValidateWorkflowBody validates a workflow that is not stored.
func (h *APIHandlers) ValidateWorkflowBody(c fiber.Ctx) error {
	workflow, err := h.bindWorkflow(c)
	if err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	result, err := h.validationService.Validate(c.Context(), workflow)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// CompileWorkflowBody renders a workflow that is not stored as Aeonmi source.
func (h *APIHandlers) CompileWorkflowBody(c fiber.Ctx) error {
	workflow, err := h.bindWorkflow(c)
	if err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.SendString(aeonmi.Compile(workflow))
}
