package api

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"kwtaxonomy/internal/grouping"
	"kwtaxonomy/internal/models"
)

// GroupHandler serves grouped keyword output via JSON API.
type GroupHandler struct {
	svc *grouping.Service
}

// NewGroupHandler creates a new API group handler.
func NewGroupHandler(svc *grouping.Service) *GroupHandler {
	return &GroupHandler{svc: svc}
}

type groupRequest struct {
	Records []models.KeywordRecord `json:"records"`
}

// Group runs the pipeline over the records in the request body.
func (h *GroupHandler) Group(c fiber.Ctx) error {
	var body groupRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.Group(body.Records)
	if err != nil {
		return handleError(c, err, "failed to group keywords")
	}

	return jsonSuccess(c, models.GroupsResponse{
		Groups:      result.Groups,
		Summary:     result.Summary,
		InputCount:  result.InputCount,
		UniqueCount: result.UniqueCount,
	})
}

// ProjectGroups returns the grouped output for a stored project.
func (h *GroupHandler) ProjectGroups(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	resp, err := h.svc.ProjectGroups(c.Context(), id)
	if err != nil {
		return handleError(c, err, "failed to group project keywords")
	}

	return jsonSuccess(c, resp)
}

// ProjectSummary returns only the summary view of a stored project's groups.
func (h *GroupHandler) ProjectSummary(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	resp, err := h.svc.ProjectGroups(c.Context(), id)
	if err != nil {
		return handleError(c, err, "failed to summarize project keywords")
	}

	return jsonSuccess(c, resp.Summary)
}
