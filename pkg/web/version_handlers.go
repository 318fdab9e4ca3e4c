package web

import (
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	result, err := h.validationService.ValidateByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) GetWorkflowAeonmi(c fiber.Ctx) error {
	source, err := h.versioningService.Compile(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.SendString(source)
}

func (h *APIHandlers) GetWorkflowVersions(c fiber.Ctx) error {
	versions, err := h.versioningService.ListVersions(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(versions)
}

func (h *APIHandlers) CreateWorkflowVersion(c fiber.Ctx) error {
	var req CreateVersionRequest

	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	version, err := h.versioningService.CreateVersion(c.Context(), c.Params("id"), req.Label)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(version)
}

func (h *APIHandlers) PromoteWorkflowVersion(c fiber.Ctx) error {
	workflow, err := h.versioningService.PromoteVersion(c.Context(), c.Params("id"), c.Params("versionId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) ArchiveWorkflowVersion(c fiber.Ctx) error {
	version, err := h.versioningService.ArchiveVersion(c.Context(), c.Params("id"), c.Params("versionId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(version)
}
