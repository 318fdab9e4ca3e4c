package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/qubeflow/qubeflow/pkg/services"
)

func (h *APIHandlers) CreateWorkflowNode(c fiber.Ctx) error {
	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node, err := h.graphService.AddNode(c.Context(), c.Params("id"), services.AddNodeRequest{
		ID:            req.ID,
		Type:          req.Type,
		Title:         req.Title,
		Position:      req.Position,
		Ports:         req.Ports,
		Config:        req.Config,
		MicroAIConfig: req.MicroAIConfig,
		Badges:        req.Badges,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) UpdateWorkflowNode(c fiber.Ctx) error {
	var req UpdateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node, err := h.graphService.UpdateNode(c.Context(), c.Params("id"), c.Params("nodeId"), services.UpdateNodeRequest{
		Title:         req.Title,
		Position:      req.Position,
		Ports:         req.Ports,
		Config:        req.Config,
		MicroAIConfig: req.MicroAIConfig,
		Badges:        req.Badges,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(node)
}

func (h *APIHandlers) DeleteWorkflowNode(c fiber.Ctx) error {
	nodeID := c.Params("nodeId")

	removed, err := h.graphService.RemoveNode(c.Context(), c.Params("id"), nodeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(RemoveNodeResponse{NodeID: nodeID, RemovedEdges: removed})
}

func (h *APIHandlers) CreateWorkflowEdge(c fiber.Ctx) error {
	var req CreateEdgeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	edge, err := h.graphService.AddEdge(c.Context(), c.Params("id"), services.AddEdgeRequest{
		ID:    req.ID,
		From:  req.From,
		To:    req.To,
		Label: req.Label,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(edge)
}

func (h *APIHandlers) DeleteWorkflowEdge(c fiber.Ctx) error {
	err := h.graphService.RemoveEdge(c.Context(), c.Params("id"), c.Params("edgeId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
