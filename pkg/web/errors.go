package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
	"github.com/qubeflow/qubeflow/pkg/persistence"
	"github.com/qubeflow/qubeflow/pkg/services"
	"github.com/qubeflow/qubeflow/pkg/validation"
)

// ValidationProblem is a problem document that also lists the validation issues that
// blocked the request.
type ValidationProblem struct {
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Status   int                `json:"status,omitempty"`
	Detail   string             `json:"detail,omitempty"`
	Instance string             `json:"instance,omitempty"`
	Issues   []validation.Issue `json:"issues"`
}

func problem(c fiber.Ctx, status int, problemType, detail string) error {
	p := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(problemType).
		WithDetail(detail)

	return c.Status(status).JSON(p)
}

func badRequest(c fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusBadRequest, "validation_error", detail)
}

func internalError(c fiber.Ctx, err error) error {
	p := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(p)
}

func unprocessable(c fiber.Ctx, invalid *services.WorkflowInvalidError) error {
	p := problems.NewStatusProblem(fiber.StatusUnprocessableEntity)

	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationProblem{
		Type:     "workflow_invalid",
		Title:    p.Title,
		Status:   fiber.StatusUnprocessableEntity,
		Detail:   invalid.Error(),
		Instance: c.Path(),
		Issues:   invalid.Result.Issues,
	})
}

// handleServiceError maps service layer errors to problem documents.
func handleServiceError(c fiber.Ctx, err error) error {
	var invalid *services.WorkflowInvalidError

	switch {
	case errors.As(err, &invalid):
		return unprocessable(c, invalid)

	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case persistence.IsWorkflowNotFound(err):
		return problem(c, fiber.StatusNotFound, "workflow_not_found", "workflow not found")

	case errors.Is(err, services.ErrNodeNotFound):
		return problem(c, fiber.StatusNotFound, "node_not_found", err.Error())

	case errors.Is(err, services.ErrEdgeNotFound):
		return problem(c, fiber.StatusNotFound, "edge_not_found", err.Error())

	case errors.Is(err, services.ErrVersionNotFound):
		return problem(c, fiber.StatusNotFound, "version_not_found", err.Error())

	case services.IsConflictError(err):
		return problem(c, fiber.StatusConflict, "conflict", err.Error())

	default:
		// Log unexpected errors but don't expose details
		return internalError(c, err)
	}
}
